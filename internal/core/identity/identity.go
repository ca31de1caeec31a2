// Package identity abstracts the identity provider. The application only
// displays who is signed in; no authorization decisions hang off it.
package identity

import "context"

// Identity describes the signed-in user.
type Identity struct {
	ID    string
	Name  string
	Email string
}

// Provider yields the current identity or nil for a guest. Login and
// Logout are fire-and-forget requests to the provider.
type Provider interface {
	Current() *Identity
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
}

// ConfigProvider is the built-in provider: identity comes from the config
// file's [identity] table. Login/Logout are no-ops.
type ConfigProvider struct {
	identity *Identity
}

// NewConfigProvider returns a provider for the given profile; empty name
// and email mean guest.
func NewConfigProvider(name, email string) *ConfigProvider {
	if name == "" && email == "" {
		return &ConfigProvider{}
	}
	return &ConfigProvider{identity: &Identity{ID: email, Name: name, Email: email}}
}

// Current implements Provider
func (p *ConfigProvider) Current() *Identity { return p.identity }

// Login implements Provider
func (p *ConfigProvider) Login(ctx context.Context) error { return nil }

// Logout implements Provider
func (p *ConfigProvider) Logout(ctx context.Context) error {
	p.identity = nil
	return nil
}
