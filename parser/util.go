package parser

import (
	"strings"
)

//*******************************************
// utility methods
//*******************************************

func _IsPrivate(value string) bool {
	return strings.Contains(value, "private")
}
