package hashgen

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"hash/fnv"

	"github.com/spaolacci/murmur3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"
)

var builtinAlgorithms = map[string]Digest{
	AlgorithmSHA256: func(data []byte) []byte {
		sum := sha256.Sum256(data)
		return sum[:]
	},
	AlgorithmSHA1: func(data []byte) []byte {
		sum := sha1.Sum(data)
		return sum[:]
	},
	AlgorithmSHA512: func(data []byte) []byte {
		sum := sha512.Sum512(data)
		return sum[:]
	},
	AlgorithmMD5: func(data []byte) []byte {
		sum := md5.Sum(data)
		return sum[:]
	},
	AlgorithmFNV128a: func(data []byte) []byte {
		h := fnv.New128a()
		h.Write(data)
		return h.Sum(nil)
	},
	AlgorithmMurmur3: func(data []byte) []byte {
		h1, h2 := murmur3.Sum128(data)
		sum := make([]byte, 16)
		binary.BigEndian.PutUint64(sum[0:8], h1)
		binary.BigEndian.PutUint64(sum[8:16], h2)
		return sum
	},
	AlgorithmBlake2b: func(data []byte) []byte {
		sum := blake2b.Sum256(data)
		return sum[:]
	},
	AlgorithmSHA3: func(data []byte) []byte {
		sum := sha3.Sum256(data)
		return sum[:]
	},
	AlgorithmBlake3: func(data []byte) []byte {
		sum := blake3.Sum256(data)
		return sum[:]
	},
}
