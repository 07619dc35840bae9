package webserver

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
)

// JsoniterSerializer swaps echo's encoding/json for jsoniter
type JsoniterSerializer struct {
	json jsoniter.API
}

func NewJsoniterSerializer() *JsoniterSerializer {
	return &JsoniterSerializer{json: jsoniter.ConfigCompatibleWithStandardLibrary}
}

func (s *JsoniterSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := s.json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (s *JsoniterSerializer) Deserialize(c echo.Context, i interface{}) error {
	return s.json.NewDecoder(c.Request().Body).Decode(i)
}
