package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		query string
		want  Params
	}{
		{"", Params{Page: 1, Limit: 20, Offset: 0}},
		{"?page=3&limit=10", Params{Page: 3, Limit: 10, Offset: 20}},
		{"?page=-1&limit=0", Params{Page: 1, Limit: 20, Offset: 0}},
		{"?page=x&limit=1000", Params{Page: 1, Limit: 100, Offset: 0}},
	}

	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/orders"+tc.query, nil)
		assert.Equal(t, tc.want, Parse(c), tc.query)
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, Slice(items, New(1, 2)))
	assert.Equal(t, []int{5}, Slice(items, New(3, 2)))
	assert.Equal(t, []int{}, Slice(items, New(4, 2)))
	assert.Equal(t, []int{}, Slice([]int(nil), New(1, 20)))
}
