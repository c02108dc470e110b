package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

func Rand8BytesToBase62() string {
	buf := make([]byte, 8)
	_, err := rand.Read(buf)
	if err != nil {
		panic(err)
	}
	var i big.Int
	return i.SetBytes(buf).Text(62)
}

// NewAssetName returns a unique file name for a stored asset, e.g.
// "1693476061123-4qZa81Kp0Vc.jpg".
func NewAssetName(ext string) string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + Rand8BytesToBase62() + ext
}
