package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	minfraud "github.com/hugochinchilla79/minfraud_sdk"
)

func responseDocument(resp *minfraud.Response) map[string]any {
	doc := make(map[string]any, len(resp.Keys()))
	for k, v := range resp.Body() {
		doc[k] = v.Interface()
	}
	return doc
}

func writeDocument(w io.Writer, format string, doc any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}
