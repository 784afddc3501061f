package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query string
		want  Params
	}{
		{"", Params{Page: 1, Limit: 20, Offset: 0}},
		{"?page=3&limit=10", Params{Page: 3, Limit: 10, Offset: 20}},
		{"?page=0&limit=0", Params{Page: 1, Limit: 20, Offset: 0}},
		{"?page=x&limit=500", Params{Page: 1, Limit: 100, Offset: 0}},
	}

	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/"+tt.query, nil)
		assert.Equal(t, tt.want, Parse(c), tt.query)
	}
}

func TestBounds(t *testing.T) {
	start, end := New(1, 2).Bounds(5)
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, end)

	start, end = New(3, 2).Bounds(5)
	assert.Equal(t, 4, start)
	assert.Equal(t, 5, end)

	start, end = New(4, 2).Bounds(5)
	assert.Equal(t, start, end)
}
