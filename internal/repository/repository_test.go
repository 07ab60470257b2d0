package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage(t *testing.T) {
	cases := []struct {
		page, size            int
		wantOffset, wantLimit int
	}{
		{0, 0, 0, 20},
		{1, 10, 0, 10},
		{3, 10, 20, 10},
		{2, 51, 20, 20},
		{-1, -5, 0, 20},
	}
	for _, tc := range cases {
		offset, limit := Page(tc.page, tc.size)
		assert.Equal(t, tc.wantOffset, offset, "page=%d size=%d", tc.page, tc.size)
		assert.Equal(t, tc.wantLimit, limit, "page=%d size=%d", tc.page, tc.size)
	}
}
