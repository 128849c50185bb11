package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shengmingqijiquan/streamlit/errors"
)

// LoadFile loads option overrides from a YAML file. Keys may be grouped
// into sections matching the option key prefixes, or written flat in
// dotted form; the two styles can be mixed:
//
//	server:
//	  enableCORS: true
//	  port: 8501
//	browser.serverAddress: example.com
//
// Every value read from the file is recorded as manually set. Unknown
// sections or keys are rejected so typos surface at startup rather than
// as silently ignored configuration.
func (o *Options) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.WrapFatal(errors.ErrConfigNotFound, "Options", "LoadFile", path)
		}
		return errors.WrapFatal(err, "Options", "LoadFile", "read config file")
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errors.WrapInvalid(err, "Options", "LoadFile", "parse YAML")
	}

	for key, value := range doc {
		// A mapping value is a section of options; anything else is a
		// flat dotted key set directly.
		section, ok := value.(map[string]any)
		if !ok {
			if err := o.Set(key, value); err != nil {
				return errors.Wrap(err, "Options", "LoadFile",
					fmt.Sprintf("apply %s from %s", key, path))
			}
			continue
		}
		for name, nested := range section {
			dotted := fmt.Sprintf("%s.%s", key, name)
			if err := o.Set(dotted, nested); err != nil {
				return errors.Wrap(err, "Options", "LoadFile",
					fmt.Sprintf("apply %s from %s", dotted, path))
			}
		}
	}
	return nil
}
