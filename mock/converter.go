package mock

import "github.com/fwojciec/mailpress"

var _ mailpress.Converter = (*Converter)(nil)

// Converter is a mock implementation of mailpress.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
