package visr

import (
	"github.com/goliatone/go-launcher/core"
	"github.com/goliatone/go-launcher/identity"
)

type RootToken struct {
	Token     string `json:"token"`
	Expires   string `json:"expires"`
	Refreshed bool   `json:"refreshed"`
}

type Device struct {
	UUID        string `json:"uuid"`
	Verified    bool   `json:"verified"`
	LastSession string `json:"lastSession"`
}

type MinecraftAccount struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccessToken string `json:"accessToken"`
	IsMain      bool   `json:"isMain"`
}

// Account is a linked VISR identity with the Minecraft accounts attached to
// it.
type Account struct {
	Type              core.AccountType   `json:"type"`
	Username          string             `json:"username"`
	UserID            int64              `json:"userId"`
	Email             string             `json:"email"`
	SetupStage        string             `json:"setupStage"`
	IsAdmin           bool               `json:"isAdmin"`
	SupportPin        string             `json:"supportPin"`
	LegitOwner        bool               `json:"legitowner"`
	RootToken         RootToken          `json:"rootToken"`
	Device            Device             `json:"device"`
	MinecraftAccounts []MinecraftAccount `json:"minecraftAccounts"`
}

// Credentials is what the caller supplies. Device telemetry is attached per
// request.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthPayload struct {
	Username string             `json:"username"`
	Password string             `json:"password"`
	Device   identity.Telemetry `json:"device"`
}

type authUser struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	SetupStage string `json:"setup_stage"`
	IsAdmin    bool   `json:"isAdmin"`
	SupportPin string `json:"support_pin"`
	LegitOwner bool   `json:"legitowner"`
}

type authResponse struct {
	RootToken         RootToken          `json:"rootToken"`
	User              authUser           `json:"user"`
	Device            Device             `json:"device"`
	MinecraftAccounts []MinecraftAccount `json:"minecraftAccounts"`
}

func (r authResponse) account() *Account {
	accounts := r.MinecraftAccounts
	if accounts == nil {
		accounts = []MinecraftAccount{}
	}
	return &Account{
		Type:              core.AccountTypeVISR,
		Username:          r.User.Username,
		UserID:            r.User.ID,
		Email:             r.User.Email,
		SetupStage:        r.User.SetupStage,
		IsAdmin:           r.User.IsAdmin,
		SupportPin:        r.User.SupportPin,
		LegitOwner:        r.User.LegitOwner,
		RootToken:         r.RootToken,
		Device:            r.Device,
		MinecraftAccounts: accounts,
	}
}

// Response is the account-linking envelope. Detail holds the decoded error
// body when the service answered with one.
type Response[T any] struct {
	core.Response[T]
	Classified *core.ClassifiedError[ErrorCode]
	Detail     *ErrorBody
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
