package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ErrDecode is wrapped by every error returned from [As].
var ErrDecode = errors.New("parse: fragment does not decode into target type")

// As decodes fragment into a T.
//
// String targets receive the fragment unchanged. Bool, integer, unsigned and
// float targets are parsed from the trimmed fragment. Every other kind
// (structs, maps, slices, pointers) is decoded as JSON; when that fails the
// fragment is passed through jsonrepair and decoded again.
//
//	type Point struct {
//	    X int `json:"x"`
//	    Y int `json:"y"`
//	}
//
//	p, err := parse.As[Point](`{x: 1, 'y': 2,}`) // repaired to {"x":1,"y":2}
//	n, err := parse.As[int](" 42 ")
func As[T any](fragment string) (T, error) {
	var out T
	target := reflect.ValueOf(&out).Elem()

	switch target.Kind() {
	case reflect.String:
		target.SetString(fragment)
		return out, nil
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		if err := setScalar(target, strings.TrimSpace(fragment)); err != nil {
			return out, fmt.Errorf("%w: %T: %w", ErrDecode, out, err)
		}
		return out, nil
	}

	err := json.Unmarshal([]byte(fragment), &out)
	if err == nil {
		return out, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(fragment)
	if repairErr != nil {
		return out, fmt.Errorf("%w: %T: %w (repair failed: %v)", ErrDecode, out, err, repairErr)
	}

	// Decode into a fresh value; a failed Unmarshal may have partially filled out.
	var repairedOut T
	if err := json.Unmarshal([]byte(repaired), &repairedOut); err != nil {
		return out, fmt.Errorf("%w: %T after repair: %w", ErrDecode, out, err)
	}
	return repairedOut, nil
}

func setScalar(target reflect.Value, s string) error {
	switch target.Kind() {
	case reflect.Bool:
		v, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		target.SetBool(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(s, 10, target.Type().Bits())
		if err != nil {
			return err
		}
		target.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(s, 10, target.Type().Bits())
		if err != nil {
			return err
		}
		target.SetUint(v)
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(s, target.Type().Bits())
		if err != nil {
			return err
		}
		target.SetFloat(v)
	}
	return nil
}
