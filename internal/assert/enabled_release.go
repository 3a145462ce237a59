//go:build !memlinkdebug

package assert

const Enabled = false
