package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageOffsetFirstPageStartsAtZero(t *testing.T) {
	assert.Equal(t, 0, pageOffset(1, 20))
	assert.Equal(t, 0, pageOffset(0, 20))
	assert.Equal(t, 0, pageOffset(-3, 20))
}

func TestPageOffsetAdvancesByPageSize(t *testing.T) {
	assert.Equal(t, 20, pageOffset(2, 20))
	assert.Equal(t, 90, pageOffset(10, 10))
}
