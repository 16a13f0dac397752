package content

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeYAML 解析 YAML 格式的站点内容，字段名与 JSON 形式一致。
func DecodeYAML(raw []byte) (*SiteContent, error) {
	var generic interface{}
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("decode site content yaml: %w", err)
	}
	if generic == nil {
		return nil, fmt.Errorf("decode site content yaml: document is empty")
	}
	asJSON, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("decode site content yaml: %w", err)
	}
	return Decode(asJSON)
}

// EncodeYAML renders doc as YAML using the same field names as Encode.
func EncodeYAML(doc *SiteContent) ([]byte, error) {
	raw, err := Encode(doc)
	if err != nil {
		return nil, err
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("encode site content yaml: %w", err)
	}
	out, err := yaml.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("encode site content yaml: %w", err)
	}
	return out, nil
}
