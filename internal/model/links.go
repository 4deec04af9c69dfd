// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Stream channel types.
const (
	ChannelTypePrimary   = "primary"
	ChannelTypeSecondary = "secondary"
)

// SocialLink is a link to one of the streamer's social profiles.
type SocialLink struct {
	ID          int64  `json:"id" db:"id"`
	Platform    string `json:"platform" db:"platform"`
	Name        string `json:"name" db:"name"`
	URL         string `json:"url" db:"url"`
	Icon        string `json:"icon" db:"icon"`
	Color       string `json:"color" db:"color"`
	Username    string `json:"username" db:"username"`
	Description string `json:"description" db:"description"`
	Order       int    `json:"order" db:"order"`
}

// NewSocialLink holds the fields required to create a SocialLink.
type NewSocialLink struct {
	Platform    string `json:"platform" validate:"required,max=64"`
	Name        string `json:"name" validate:"required,max=255"`
	URL         string `json:"url" validate:"required,max=2048"`
	Icon        string `json:"icon" validate:"required,max=255"`
	Color       string `json:"color" validate:"required,max=64"`
	Username    string `json:"username" validate:"max=255"`
	Description string `json:"description" validate:"max=1024"`
	Order       *int   `json:"order" validate:"required"`
}

// Build returns the SocialLink described by n, without an ID.
func (n NewSocialLink) Build() SocialLink {
	l := SocialLink{
		Platform:    n.Platform,
		Name:        n.Name,
		URL:         n.URL,
		Icon:        n.Icon,
		Color:       n.Color,
		Username:    n.Username,
		Description: n.Description,
	}
	setInt(&l.Order, n.Order)
	return l
}

// SocialLinkPatch is a partial update of a SocialLink.
type SocialLinkPatch struct {
	Platform    *string `json:"platform" validate:"omitempty,min=1,max=64"`
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	URL         *string `json:"url" validate:"omitempty,min=1,max=2048"`
	Icon        *string `json:"icon" validate:"omitempty,min=1,max=255"`
	Color       *string `json:"color" validate:"omitempty,min=1,max=64"`
	Username    *string `json:"username" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1024"`
	Order       *int    `json:"order"`
}

// Apply copies the set fields of p onto l.
func (p SocialLinkPatch) Apply(l *SocialLink) {
	setString(&l.Platform, p.Platform)
	setString(&l.Name, p.Name)
	setString(&l.URL, p.URL)
	setString(&l.Icon, p.Icon)
	setString(&l.Color, p.Color)
	setString(&l.Username, p.Username)
	setString(&l.Description, p.Description)
	setInt(&l.Order, p.Order)
}

// StreamChannel is a channel listed in the streams section.
type StreamChannel struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Type        string `json:"type" db:"type"`
	Description string `json:"description" db:"description"`
	Platform    string `json:"platform" db:"platform"`
	URL         string `json:"url" db:"url"`
	Color       string `json:"color" db:"color"`
	Order       int    `json:"order" db:"order"`
}

// NewStreamChannel holds the fields required to create a StreamChannel.
type NewStreamChannel struct {
	Name        string `json:"name" validate:"required,max=255"`
	Type        string `json:"type" validate:"required,oneof=primary secondary"`
	Description string `json:"description" validate:"max=1024"`
	Platform    string `json:"platform" validate:"required,max=64"`
	URL         string `json:"url" validate:"required,max=2048"`
	Color       string `json:"color" validate:"required,max=64"`
	Order       *int   `json:"order" validate:"required"`
}

// Build returns the StreamChannel described by n, without an ID.
func (n NewStreamChannel) Build() StreamChannel {
	c := StreamChannel{
		Name:        n.Name,
		Type:        n.Type,
		Description: n.Description,
		Platform:    n.Platform,
		URL:         n.URL,
		Color:       n.Color,
	}
	setInt(&c.Order, n.Order)
	return c
}

// StreamChannelPatch is a partial update of a StreamChannel.
type StreamChannelPatch struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Type        *string `json:"type" validate:"omitempty,oneof=primary secondary"`
	Description *string `json:"description" validate:"omitempty,max=1024"`
	Platform    *string `json:"platform" validate:"omitempty,min=1,max=64"`
	URL         *string `json:"url" validate:"omitempty,min=1,max=2048"`
	Color       *string `json:"color" validate:"omitempty,min=1,max=64"`
	Order       *int    `json:"order"`
}

// Apply copies the set fields of p onto c.
func (p StreamChannelPatch) Apply(c *StreamChannel) {
	setString(&c.Name, p.Name)
	setString(&c.Type, p.Type)
	setString(&c.Description, p.Description)
	setString(&c.Platform, p.Platform)
	setString(&c.URL, p.URL)
	setString(&c.Color, p.Color)
	setInt(&c.Order, p.Order)
}
