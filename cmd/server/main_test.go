package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppInfo(t *testing.T) {
	assert.Equal(t, "prebuilt-checkout", appInfo.Name)
	assert.Equal(t, "0.0.1", appInfo.Version)
	assert.Equal(t, "https://github.com/stripe-samples", appInfo.URL)
}
