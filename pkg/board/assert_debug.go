//go:build dragdebug

package board

const debugAssertions = true
