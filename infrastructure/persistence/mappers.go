package persistence

import (
	"github.com/helixml/sitekit/domain/bilingual"
	"github.com/helixml/sitekit/domain/business"
	"github.com/helixml/sitekit/domain/document"
	"github.com/helixml/sitekit/domain/migration"
	"github.com/helixml/sitekit/domain/navigation"
	"github.com/helixml/sitekit/domain/slide"
)

// MenuItemMapper maps between navigation.MenuItem and MenuItemModel.
type MenuItemMapper struct{}

// ToDomain converts a MenuItemModel to a domain MenuItem.
func (MenuItemMapper) ToDomain(e MenuItemModel) navigation.MenuItem {
	return navigation.ReconstructMenuItem(
		e.ID,
		bilingual.New(e.LabelPrimary, e.LabelSecondary),
		e.Path,
		e.ParentID,
		e.SortOrder,
		navigation.Location(e.Location),
		e.IsActive,
		e.CreatedAt,
		e.UpdatedAt,
	)
}

// ToModel converts a domain MenuItem to a MenuItemModel.
func (MenuItemMapper) ToModel(m navigation.MenuItem) MenuItemModel {
	return MenuItemModel{
		ID:             m.ID(),
		LabelPrimary:   m.Label().Primary(),
		LabelSecondary: m.Label().Secondary(),
		Path:           m.Path(),
		ParentID:       m.ParentID(),
		SortOrder:      m.SortOrder(),
		Location:       string(m.Location()),
		IsActive:       m.IsActive(),
		CreatedAt:      m.CreatedAt(),
		UpdatedAt:      m.UpdatedAt(),
	}
}

// SlideMapper maps between slide.Slide and SlideModel.
type SlideMapper struct{}

// ToDomain converts a SlideModel to a domain Slide. Rows written before the
// media type column existed get it inferred from the URL.
func (SlideMapper) ToDomain(e SlideModel) slide.Slide {
	mediaType := slide.MediaType(e.MediaType)
	if mediaType == "" {
		mediaType = slide.DetectMediaType(e.MediaURL)
	}
	return slide.ReconstructSlide(
		e.ID,
		slide.Content{
			Title:     bilingual.New(e.TitlePrimary, e.TitleSecondary),
			Subtitle:  bilingual.New(e.SubtitlePrimary, e.SubtitleSecondary),
			MediaURL:  e.MediaURL,
			MediaType: mediaType,
			PrimaryCTA: slide.NewCTA(
				bilingual.New(e.PrimaryCTATextPrimary, e.PrimaryCTATextSecondary),
				e.PrimaryCTALink,
			),
			SecondaryCTA: slide.NewCTA(
				bilingual.New(e.SecondaryCTATextPrimary, e.SecondaryCTATextSecondary),
				e.SecondaryCTALink,
			),
		},
		e.SortOrder,
		e.IsActive,
		e.PageBinding,
		e.CreatedAt,
		e.UpdatedAt,
	)
}

// ToModel converts a domain Slide to a SlideModel.
func (SlideMapper) ToModel(s slide.Slide) SlideModel {
	return SlideModel{
		ID:                        s.ID(),
		TitlePrimary:              s.Title().Primary(),
		TitleSecondary:            s.Title().Secondary(),
		SubtitlePrimary:           s.Subtitle().Primary(),
		SubtitleSecondary:         s.Subtitle().Secondary(),
		MediaURL:                  s.MediaURL(),
		MediaType:                 string(s.MediaType()),
		PrimaryCTATextPrimary:     s.PrimaryCTA().Text().Primary(),
		PrimaryCTATextSecondary:   s.PrimaryCTA().Text().Secondary(),
		PrimaryCTALink:            s.PrimaryCTA().Link(),
		SecondaryCTATextPrimary:   s.SecondaryCTA().Text().Primary(),
		SecondaryCTATextSecondary: s.SecondaryCTA().Text().Secondary(),
		SecondaryCTALink:          s.SecondaryCTA().Link(),
		SortOrder:                 s.SortOrder(),
		IsActive:                  s.IsActive(),
		PageBinding:               s.PageBinding(),
		CreatedAt:                 s.CreatedAt(),
		UpdatedAt:                 s.UpdatedAt(),
	}
}

// DocumentMapper maps between document.Document and DocumentModel.
type DocumentMapper struct{}

// ToDomain converts a DocumentModel to a domain Document.
func (DocumentMapper) ToDomain(e DocumentModel) document.Document {
	return document.ReconstructDocument(
		e.ID,
		document.Params{
			Title:        bilingual.New(e.TitlePrimary, e.TitleSecondary),
			DocumentType: e.DocumentType,
			Year:         e.Year,
			Quarter:      e.Quarter,
			PublishedAt:  e.PublishedAt,
			FileURL:      e.FileURL,
		},
		e.IsActive,
		e.IsPublished,
		e.CreatedAt,
		e.UpdatedAt,
	)
}

// ToModel converts a domain Document to a DocumentModel.
func (DocumentMapper) ToModel(d document.Document) DocumentModel {
	return DocumentModel{
		ID:             d.ID(),
		TitlePrimary:   d.Title().Primary(),
		TitleSecondary: d.Title().Secondary(),
		DocumentType:   d.Type(),
		Year:           d.Year(),
		Quarter:        d.Quarter(),
		PublishedAt:    d.PublishedAt(),
		FileURL:        d.FileURL(),
		IsActive:       d.IsActive(),
		IsPublished:    d.IsPublished(),
		CreatedAt:      d.CreatedAt(),
		UpdatedAt:      d.UpdatedAt(),
	}
}

// BusinessLineMapper maps between business.Line and BusinessLineModel.
type BusinessLineMapper struct{}

// ToDomain converts a BusinessLineModel to a domain Line.
func (BusinessLineMapper) ToDomain(e BusinessLineModel) business.Line {
	return business.ReconstructLine(
		e.ID,
		business.LineParams{
			Slug:        e.Slug,
			Name:        bilingual.New(e.NamePrimary, e.NameSecondary),
			Description: bilingual.New(e.DescriptionPrimary, e.DescriptionSecondary),
			PagePath:    e.PagePath,
			SortOrder:   e.SortOrder,
		},
		e.IsActive,
		e.CreatedAt,
		e.UpdatedAt,
	)
}

// ToModel converts a domain Line to a BusinessLineModel.
func (BusinessLineMapper) ToModel(l business.Line) BusinessLineModel {
	return BusinessLineModel{
		ID:                   l.ID(),
		Slug:                 l.Slug(),
		NamePrimary:          l.Name().Primary(),
		NameSecondary:        l.Name().Secondary(),
		DescriptionPrimary:   l.Description().Primary(),
		DescriptionSecondary: l.Description().Secondary(),
		PagePath:             l.PagePath(),
		SortOrder:            l.SortOrder(),
		IsActive:             l.IsActive(),
		CreatedAt:            l.CreatedAt(),
		UpdatedAt:            l.UpdatedAt(),
	}
}

// detailMapper maps one detail table; the kind is not stored in the row.
type detailMapper struct {
	kind business.Kind
}

// ToDomain converts a DetailModel to a domain Detail.
func (m detailMapper) ToDomain(e DetailModel) business.Detail {
	return business.ReconstructDetail(e.ID, e.LineID, m.kind, business.DetailContent{
		Title:    bilingual.New(e.TitlePrimary, e.TitleSecondary),
		Body:     bilingual.New(e.BodyPrimary, e.BodySecondary),
		Value:    e.Value,
		ImageURL: e.ImageURL,
	}, e.SortOrder)
}

// ToModel converts a domain Detail to a DetailModel.
func (m detailMapper) ToModel(d business.Detail) DetailModel {
	c := d.Content()
	return DetailModel{
		ID:             d.ID(),
		LineID:         d.LineID(),
		TitlePrimary:   c.Title.Primary(),
		TitleSecondary: c.Title.Secondary(),
		BodyPrimary:    c.Body.Primary(),
		BodySecondary:  c.Body.Secondary(),
		Value:          c.Value,
		ImageURL:       c.ImageURL,
		SortOrder:      d.SortOrder(),
	}
}

// AppliedMigrationMapper maps ledger rows.
type AppliedMigrationMapper struct{}

// ToDomain converts a ledger row to a domain Applied.
func (AppliedMigrationMapper) ToDomain(e AppliedMigrationModel) migration.Applied {
	return migration.ReconstructApplied(e.ID, e.Description, e.Checksum, e.AppliedAt)
}

// ToModel converts a domain Applied to a ledger row.
func (AppliedMigrationMapper) ToModel(a migration.Applied) AppliedMigrationModel {
	return AppliedMigrationModel{
		ID:          a.Version(),
		Description: a.Description(),
		Checksum:    a.Checksum(),
		AppliedAt:   a.AppliedAt(),
	}
}
