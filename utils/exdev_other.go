//go:build !unix

package utils

func isEXDEV(err error) bool {
	return false
}
