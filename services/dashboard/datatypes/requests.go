// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/cfe-solutions/clio-analytics/pkg/validation"
)

// requestValidate is the validator instance for dashboard query datatypes.
// Initialized in init() with custom validators.
var requestValidate *validator.Validate

func init() {
	requestValidate = validator.New()

	if err := requestValidate.RegisterValidation("filtername", validateFilterName); err != nil {
		panic(fmt.Sprintf("failed to register filtername validator: %v", err))
	}
}

// validateFilterName accepts department/practice-area style values that
// are safe to pass on as query parameters.
func validateFilterName(fl validator.FieldLevel) bool {
	_, err := validation.SanitizeName(fl.Field().String())
	return err == nil
}

// Matter3DQuery filters the 3D matter dataset.
type Matter3DQuery struct {
	Limit      int    `form:"limit" validate:"omitempty,min=1,max=2000"`
	Department string `form:"department" validate:"omitempty,filtername"`
	RangeDays  int    `form:"range_days" validate:"omitempty,min=1,max=3650"`
}

// Validate applies defaults and runs tag validation.
func (q *Matter3DQuery) Validate() error {
	if q.Limit == 0 {
		q.Limit = 500
	}
	if q.RangeDays == 0 {
		q.RangeDays = 365
	}
	return requestValidate.Struct(q)
}

// FamilyNetworkQuery bounds the family relationship traversal.
type FamilyNetworkQuery struct {
	Limit int `form:"limit" validate:"omitempty,min=1,max=1000"`
}

func (q *FamilyNetworkQuery) Validate() error {
	if q.Limit == 0 {
		q.Limit = 100
	}
	return requestValidate.Struct(q)
}

// VendorNetworkQuery filters the vendor usage traversal.
type VendorNetworkQuery struct {
	PracticeArea string `form:"practice_area" validate:"omitempty,filtername"`
	MinValue     int    `form:"min_value" validate:"omitempty,min=0"`
}

func (q *VendorNetworkQuery) Validate() error {
	if q.MinValue == 0 {
		q.MinValue = 50000
	}
	return requestValidate.Struct(q)
}

// StaffNetworkQuery filters the staff workload traversal.
type StaffNetworkQuery struct {
	Department string `form:"department" validate:"omitempty,filtername"`
}

func (q *StaffNetworkQuery) Validate() error {
	return requestValidate.Struct(q)
}

// WorkloadQuery selects the heatmap dimension.
type WorkloadQuery struct {
	Dimension string `form:"dimension" validate:"omitempty,oneof=practice_area stage month"`
}

func (q *WorkloadQuery) Validate() error {
	if q.Dimension == "" {
		q.Dimension = "practice_area"
	}
	return requestValidate.Struct(q)
}

// TimelineQuery filters the matter timeline.
type TimelineQuery struct {
	Department string `form:"department" validate:"omitempty,filtername"`
	Limit      int    `form:"limit" validate:"omitempty,min=1,max=500"`
}

func (q *TimelineQuery) Validate() error {
	if q.Limit == 0 {
		q.Limit = 50
	}
	return requestValidate.Struct(q)
}
