package registry

type configSource interface {
	GetRegistry() Config
}

// Config is the token validation policy. Thresholds differ between push
// transports, so they are configuration rather than constants.
type Config struct {
	MinTokenLength int    `yaml:"minTokenLength"`
	TokenPrefix    string `yaml:"tokenPrefix"`
}

const defaultMinTokenLength = 20

func (c Config) minLength() int {
	if c.MinTokenLength <= 0 {
		return defaultMinTokenLength
	}
	return c.MinTokenLength
}
