package common

import (
	"html"
	"math/rand"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/spf13/cast"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var snowflakeNode *snowflake.Node

func init() {
	var err error
	snowflakeNode, err = snowflake.NewNode(rand.Int63n(1024)) //nolint:gosec
	if err != nil {
		panic(err)
	}
}

// UUIDint64 returns a snowflake based int64 identifier.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// UUID returns a random string identifier.
func UUID() string {
	return uuid.NewString()
}

// CleanText strips surrounding whitespace and escapes HTML markup from
// user supplied free text fields.
func CleanText(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

// ToInt coerces an arbitrary form value to int, 0 on failure.
func ToInt(v interface{}) int {
	return cast.ToInt(v)
}
