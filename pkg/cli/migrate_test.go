package cli_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/safetydocs/pkg/cli"
)

func TestGetIndexConfig(t *testing.T) {
	cfg := cli.GetIndexConfig("")
	gt.Array(t, cfg.Collections).Length(1)
	gt.String(t, cfg.Collections[0].Name).Equal("audit_log")
	gt.Array(t, cfg.Collections[0].Indexes).Length(3)

	for _, idx := range cfg.Collections[0].Indexes {
		last := idx.Fields[len(idx.Fields)-1]
		gt.String(t, last.Path).Equal("CreatedAt")
	}

	prefixed := cli.GetIndexConfig("test")
	gt.String(t, prefixed.Collections[0].Name).Equal("test_audit_log")
}
