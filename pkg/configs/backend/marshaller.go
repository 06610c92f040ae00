package backend

import (
	"os"

	"gopkg.in/yaml.v3"
)

// load weaved server config from a file.
//
// args:
//   - filepath: filepath refers a config file.
//
// returns *WeavedConfig, error:
//
//	When loading success, returns `(*WeavedConfig, nil)`.
//	Otherwise, returns `(nil, error)`.
func LoadWeavedConfig(filepath string) (*WeavedConfig, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return Unmarshal(content)
}

func Unmarshal(conf []byte) (out *WeavedConfig, err error) {
	var _out *WeavedConfigMarshall
	err = yaml.Unmarshal(conf, &_out)
	if err != nil {
		return nil, err
	}
	out = TrySeal(_out)
	return out, nil
}
