// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Site settings defaults applied until an admin saves the theme.
const (
	DefaultPrimaryColor   = "#f97316"
	DefaultSecondaryColor = "#000000"
	DefaultBorderRadius   = "0.5rem"
	DefaultFontFamily     = "'Inter', sans-serif"
)

// SiteSettings is the singleton theme configuration.
type SiteSettings struct {
	ID             int64     `json:"id,omitempty" db:"id"`
	PrimaryColor   string    `json:"primaryColor" db:"primary_color"`
	SecondaryColor string    `json:"secondaryColor" db:"secondary_color"`
	BorderRadius   string    `json:"borderRadius" db:"border_radius"`
	FontFamily     string    `json:"fontFamily" db:"font_family"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// DefaultSiteSettings returns the settings served before any row exists.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		PrimaryColor:   DefaultPrimaryColor,
		SecondaryColor: DefaultSecondaryColor,
		BorderRadius:   DefaultBorderRadius,
		FontFamily:     DefaultFontFamily,
	}
}

// SiteSettingsPatch is a partial update of SiteSettings. Nil fields are kept.
type SiteSettingsPatch struct {
	PrimaryColor   *string `json:"primaryColor" validate:"omitempty,min=1,max=64"`
	SecondaryColor *string `json:"secondaryColor" validate:"omitempty,min=1,max=64"`
	BorderRadius   *string `json:"borderRadius" validate:"omitempty,min=1,max=32"`
	FontFamily     *string `json:"fontFamily" validate:"omitempty,min=1,max=255"`
}

// Apply copies the set fields of p onto s.
func (p SiteSettingsPatch) Apply(s *SiteSettings) {
	setString(&s.PrimaryColor, p.PrimaryColor)
	setString(&s.SecondaryColor, p.SecondaryColor)
	setString(&s.BorderRadius, p.BorderRadius)
	setString(&s.FontFamily, p.FontFamily)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
