//go:build !dragdebug

package board

const debugAssertions = false
