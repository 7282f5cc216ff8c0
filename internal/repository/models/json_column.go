package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// marshalColumn encodes v as a JSON string for a CLOB/TEXT column.
// Oracle drivers bind string more reliably than []byte for CLOBs.
func marshalColumn(v interface{}) (driver.Value, error) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// unmarshalColumn decodes a JSON column value. NULL, "" and "null" leave
// dest untouched so callers can default to an empty list.
func unmarshalColumn(value interface{}, dest interface{}, typeName string) (bool, error) {
	var bytesToParse []byte
	switch v := value.(type) {
	case nil:
		return false, nil
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return false, fmt.Errorf("%s Scan: unsupported type %T", typeName, value)
	}
	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(bytesToParse, dest); err != nil {
		return false, fmt.Errorf("%s Scan: %w", typeName, err)
	}
	return true, nil
}

// Option is the stored form of one answer option.
type Option struct {
	Key   string `json:"optionKey"`
	Value string `json:"optionValue"`
}

// OptionList is stored as a JSON array.
type OptionList []Option

// Value implements the driver.Valuer interface
func (o OptionList) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	return marshalColumn([]Option(o))
}

// Scan implements the sql.Scanner interface
func (o *OptionList) Scan(value interface{}) error {
	var list []Option
	ok, err := unmarshalColumn(value, &list, "OptionList")
	if err != nil {
		return err
	}
	if !ok || list == nil {
		list = []Option{}
	}
	*o = list
	return nil
}

// Answer is the stored form of one graded answer.
type Answer struct {
	QuestionID        string `json:"questionId"`
	QuestionText      string `json:"questionText"`
	SelectedAnswerKey string `json:"selectedAnswerKey"`
	CorrectAnswerKey  string `json:"correctAnswerKey"`
	IsCorrect         bool   `json:"isCorrect"`
}

// AnswerList is stored as a JSON array embedded in the submission row.
type AnswerList []Answer

// Value implements the driver.Valuer interface
func (a AnswerList) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	return marshalColumn([]Answer(a))
}

// Scan implements the sql.Scanner interface
func (a *AnswerList) Scan(value interface{}) error {
	var list []Answer
	ok, err := unmarshalColumn(value, &list, "AnswerList")
	if err != nil {
		return err
	}
	if !ok || list == nil {
		list = []Answer{}
	}
	*a = list
	return nil
}
