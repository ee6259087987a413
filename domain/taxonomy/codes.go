// Package taxonomy holds the fixed vocabulary of investor-document codes and
// the ordered keyword rules that infer a code from a document title.
//
// Rules are data: the default table is embedded from rules.yaml and can be
// replaced with LoadFile. Evaluation is first-match-wins, top to bottom.
package taxonomy

// Taxonomy codes referenced from Go code. The authoritative list is the
// codes section of the loaded rule table.
const (
	CodeAnnualReport         = "annual_report"
	CodeFinancialReport      = "financial_report"
	CodeSustainabilityReport = "sustainability_report"
	CodeRUPSReport           = "rups_report"
	CodeRUPSAnnual           = "rups_annual"
	CodeRUPSExtraordinary    = "rups_extraordinary"
	CodeOJKDisclosure        = "ojk_disclosure"
	CodeBEIAnnouncement      = "bei_announcement"
	CodeCorporateAction      = "corporate_action"
	CodeManagementChange     = "management_change"
	CodePressRelease         = "press_release"
	CodePublicExpose         = "public_expose"
	CodeProspectus           = "prospectus"
	CodeOther                = "other"
)

// Action is what a matching rule asks the classifier to do.
type Action string

// Action values.
const (
	ActionNone       Action = "none"
	ActionReclassify Action = "reclassify"
	ActionDelete     Action = "delete"
)
