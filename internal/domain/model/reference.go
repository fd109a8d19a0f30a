package model

import (
	"bytes"
	"encoding/json"
)

// Reference は画像や商品への参照。
// バックエンドからは文字列、{_ref,_type}、{_type,asset:{_ref}} のどれでも届くので、
// 参照先IDだけ拾って元の形は Raw に残す。
type Reference struct {
	Ref  string
	Type string
	Raw  json.RawMessage
}

type referenceBody struct {
	Ref   string `json:"_ref"`
	Type  string `json:"_type,omitempty"`
	Asset *struct {
		Ref string `json:"_ref"`
	} `json:"asset,omitempty"`
}

func (r *Reference) UnmarshalJSON(b []byte) error {
	*r = Reference{}

	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	r.Raw = append(json.RawMessage(nil), trimmed...)

	switch trimmed[0] {
	case '"':
		return json.Unmarshal(trimmed, &r.Ref)
	case '{':
		var body referenceBody
		if err := json.Unmarshal(trimmed, &body); err != nil {
			//形が違っても一覧全体は落とさない
			return nil
		}
		r.Type = body.Type
		r.Ref = body.Ref
		if r.Ref == "" && body.Asset != nil {
			r.Ref = body.Asset.Ref
		}
	}
	return nil
}

// MarshalJSON は受け取った形のまま返す。
func (r Reference) MarshalJSON() ([]byte, error) {
	if len(r.Raw) > 0 {
		return r.Raw, nil
	}
	if r.Ref == "" {
		return []byte("null"), nil
	}
	return json.Marshal(referenceBody{Ref: r.Ref, Type: r.Type})
}
