package manifest

import (
	"github.com/BurntSushi/toml"
)

// decodeTOML unmarshals TOML data into v and returns the keys that did not
// map onto any field.
func decodeTOML(data []byte, v interface{}) ([]string, error) {
	md, err := toml.Decode(string(data), v)
	if err != nil {
		return nil, err
	}
	var unknown []string
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}
	return unknown, nil
}
