package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ConvertString renders any value for log meta fields.
func ConvertString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case error:
		return val.Error()
	case fmt.Stringer:
		return val.String()
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}

func ConvertInt(v interface{}) int {
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case string:
		i, err := strconv.Atoi(val)
		if err != nil {
			return 0
		}
		return i
	}
	return 0
}

// RoundMoney keeps two decimals, matching the DECIMAL(10,2) columns.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
