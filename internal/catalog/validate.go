// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/criaah/medmaps/pkg/types"
)

// recordPattern is the strict identifier shape accepted on load.
var recordPattern = regexp.MustCompile(`^map_\d{4,}$`)

// recordValidate checks records read from disk. Initialized in init() with
// the mapid rule.
var recordValidate *validator.Validate

func init() {
	recordValidate = validator.New()
	if err := recordValidate.RegisterValidation("mapid", validateMapID); err != nil {
		panic(err)
	}
}

func validateMapID(fl validator.FieldLevel) bool {
	return recordPattern.MatchString(fl.Field().String())
}

// ValidateEntry checks the struct tags of a summary entry.
func ValidateEntry(e *types.SummaryEntry) error {
	return recordValidate.Struct(e)
}

// ValidateDetail checks a detail record. The related list may not name the
// record itself.
func ValidateDetail(d *types.DetailRecord) error {
	if err := recordValidate.Struct(d); err != nil {
		return err
	}
	for _, id := range d.RelatedMaps {
		if id == d.ID {
			return &selfLinkError{id: id}
		}
	}
	return nil
}

type selfLinkError struct{ id string }

func (e *selfLinkError) Error() string { return e.id + " lists itself as related" }
