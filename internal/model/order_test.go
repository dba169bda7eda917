package model_test

import (
	"testing"

	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeOrderCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ORD250001", "ORD250001"},
		{"ord250001", "ORD250001"},
		{"DHORD250001", "ORD250001"},
		{"DH ORD250001", "ORD250001"},
		{"  dh ord250001  ", "ORD250001"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, model.NormalizeOrderCode(tc.in))
	}
}
