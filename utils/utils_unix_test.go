//go:build unix
// +build unix

package utils

import (
	"testing"
)

func TestSourceDir(t *testing.T) {
	cases := []struct {
		file string
		want string
	}{
		{
			file: "/Users/name/go/pkg/mod/github.com/go-dbal/tablemodel@v1.2.3/utils/utils.go",
			want: "/Users/name/go/pkg/mod/github.com/go-dbal/",
		},
		{
			file: "/go/work/proj/tablemodel/utils/utils.go",
			want: "/go/work/proj/tablemodel/",
		},
		{
			file: "/go/work/proj/tablemodel_alias/utils/utils.go",
			want: "/go/work/proj/tablemodel_alias/",
		},
		{
			file: "/go/work/proj/my.go-dbal/tablemodel@v1.2.3/utils/utils.go",
			want: "/go/work/proj/my.go-dbal/tablemodel@v1.2.3/",
		},
	}
	for _, c := range cases {
		s := sourceDir(c.file)
		if s != c.want {
			t.Fatalf("%s: expected %s, got %s", c.file, c.want, s)
		}
	}
}
