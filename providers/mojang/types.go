package mojang

import (
	"strings"

	"github.com/goliatone/go-launcher/core"
)

type Agent struct {
	Name    string `json:"name"`
	Version int    `json:"version"`
}

// LauncherAgent is sent with every authenticate request unless overridden.
var LauncherAgent = Agent{Name: "VI Software Launcher Core", Version: 1}

type AuthPayload struct {
	Agent       Agent  `json:"agent"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	ClientToken string `json:"clientToken,omitempty"`
	RequestUser bool   `json:"requestUser"`
}

type tokenPayload struct {
	AccessToken string `json:"accessToken"`
	ClientToken string `json:"clientToken"`
	RequestUser *bool  `json:"requestUser,omitempty"`
}

type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UserProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type User struct {
	ID         string         `json:"id"`
	Properties []UserProperty `json:"properties"`
}

type Session struct {
	AccessToken     string  `json:"accessToken"`
	ClientToken     string  `json:"clientToken"`
	SelectedProfile Profile `json:"selectedProfile"`
	User            *User   `json:"user,omitempty"`
}

// Response is the legacy provider envelope: the shared response plus the
// classified error attachment on failures.
type Response[T any] struct {
	core.Response[T]
	Classified *core.ClassifiedError[ErrorCode]
}

func (r Response[T]) ErrorCode() ErrorCode {
	if r.Classified == nil {
		return ""
	}
	return r.Classified.Code
}

func (r Response[T]) IsInternalError() bool {
	return r.Classified != nil && r.Classified.Internal
}

type StatusColor string

const (
	StatusRed    StatusColor = "red"
	StatusYellow StatusColor = "yellow"
	StatusGreen  StatusColor = "green"
	// StatusGrey means the status is unknown.
	StatusGrey StatusColor = "grey"
)

type ServiceStatus struct {
	Service   string      `json:"service"`
	Status    StatusColor `json:"status"`
	Name      string      `json:"name"`
	Essential bool        `json:"essential"`
}

// SummaryEntry is one row of the upptime summary document.
type SummaryEntry struct {
	Slug   string `json:"slug"`
	Status string `json:"status"`
}

func DefaultStatuses() []ServiceStatus {
	return []ServiceStatus{
		{Service: "vi-software-api", Status: StatusGrey, Name: "VI Software API", Essential: true},
		{Service: "vi-software-yggdrasil-auth-server", Status: StatusGrey, Name: "VI Software Yggdrasil Auth Server", Essential: true},
		{Service: "vi-software-cdn", Status: StatusGrey, Name: "VI Software CDN", Essential: true},
		{Service: "vi-software-portal", Status: StatusGrey, Name: "VI Software Portal", Essential: true},
		{Service: "user-content-server-otto", Status: StatusGrey, Name: "User Content Server (Otto)", Essential: false},
		{Service: "vi-software-skin-rendering-service", Status: StatusGrey, Name: "VI Software Skin Rendering Service", Essential: false},
		{Service: "vi-software-docs", Status: StatusGrey, Name: "VI Software Docs", Essential: false},
	}
}

// StatusToHex converts a status color to its display hex value. Unknown
// colors render grey.
func StatusToHex(status string) string {
	switch StatusColor(strings.ToLower(strings.TrimSpace(status))) {
	case StatusGreen:
		return "#a5c325"
	case StatusYellow:
		return "#eac918"
	case StatusRed:
		return "#c32625"
	default:
		return "#848484"
	}
}
