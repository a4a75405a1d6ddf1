// Package config reads configuration files into documents and extracts
// typed values from them.
//
// A Parser is created from anything iotools.Resolve accepts, usually a
// path:
//
//	p, err := config.NewAt("/etc/radio", "capture.yaml")
//	if err != nil {
//		return err
//	}
//	rate, err := config.Get[float64](p, "rx.sample_rate")
//	gains := config.GetOr(p, "rx.gains", []float64{0})
//
// Values are addressed with ir paths such as a.b[0]. Extraction dumps
// the addressed subtree and decodes it with github.com/goccy/go-yaml, so
// anything that package can decode into works, including structs with
// yaml field tags.
package config
