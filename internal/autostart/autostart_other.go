//go:build !windows && !linux

package autostart

// unsupportedRegistrar is the fallback on platforms without a supported
// login-item mechanism.
type unsupportedRegistrar struct{}

func newRegistrar() Registrar {
	return &unsupportedRegistrar{}
}

func (r *unsupportedRegistrar) Enabled() (bool, error) {
	return false, ErrUnsupported
}

func (r *unsupportedRegistrar) Set(bool) error {
	return ErrUnsupported
}
