package tutor

import (
	"tutorhub/internal/pkg/apperr"
	"tutorhub/internal/pkg/fixed"
	"tutorhub/internal/pkg/pagination"
	"tutorhub/internal/repository"
)

// ListQuery is GET /tutors. Prices and rating are decimals such as "25.50".
type ListQuery struct {
	MinPrice  string `form:"minPrice" validate:"omitempty,numeric"`
	MaxPrice  string `form:"maxPrice" validate:"omitempty,numeric"`
	MinRating string `form:"minRating" validate:"omitempty,numeric"`
	Search    string `form:"search" validate:"omitempty,max=100"`
	pagination.Page
}

func (q ListQuery) Filter() (repository.TutorFilter, error) {
	f := repository.TutorFilter{Search: q.Search}
	var err error
	if f.MinPrice, err = optionalDecimal(q.MinPrice, "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = optionalDecimal(q.MaxPrice, "maxPrice"); err != nil {
		return f, err
	}
	if f.MinRating, err = optionalDecimal(q.MinRating, "minRating"); err != nil {
		return f, err
	}
	return f, nil
}

func optionalDecimal(raw, field string) (*fixed.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := fixed.Parse(raw)
	if err != nil {
		return nil, apperr.Validationf("%s must be a decimal with at most two places", field)
	}
	return &d, nil
}
