package hooks

// Config is the top-level configuration for hooks loaded from .dispatch.hooks.yml.
type Config struct {
	Version int         `yaml:"version"`
	Hooks   HooksConfig `yaml:"hooks"`
}

// HooksConfig contains all hook configurations.
type HooksConfig struct {
	PostServiceCall []*HookConfig `yaml:"post_service_call"`
	PostCertificate []*HookConfig `yaml:"post_certificate"`
}

// HookConfig defines a single hook's configuration.
type HookConfig struct {
	Command string `yaml:"command"`
	Timeout int    `yaml:"timeout"` // seconds, default 30
}

// DefaultTimeout is the default timeout for hook execution in seconds.
const DefaultTimeout = 30

// Hook events.
const (
	EventPostServiceCall = "post_service_call"
	EventPostCertificate = "post_certificate"
)

// For returns the hooks configured for event. A nil config has none.
func (c *Config) For(event string) []*HookConfig {
	if c == nil {
		return nil
	}
	switch event {
	case EventPostServiceCall:
		return c.Hooks.PostServiceCall
	case EventPostCertificate:
		return c.Hooks.PostCertificate
	}
	return nil
}
