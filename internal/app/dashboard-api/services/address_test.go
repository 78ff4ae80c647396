package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	zeroAccountHex      = "0000000000000000000000000000000000000000000000000000000000000000"
	zeroAccountFriendly = "EQAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAM9c"
	walletHex           = "83dfd552e63729b472fcbcc8c45ebcc6691702558b68ec7527e1ba403a0f31a8"
	walletFriendly      = "EQCD39VS5jcptHL8vMjEXrzGaRcCVYto7HUn4bpAOg8xqB2N"
)

func TestToFriendlyAddressKeepsFriendlyAddresses(t *testing.T) {
	for _, addr := range []string{walletFriendly, "UQCD39VS5jcptHL8vMjEXrzGaRcCVYto7HUn4bpAOg8xqEBI"} {
		require.Equal(t, addr, ToFriendlyAddress(addr))
		require.Equal(t, addr, ToFriendlyAddress(ToFriendlyAddress(addr)))
	}
}

func TestToFriendlyAddressEncodesRawForm(t *testing.T) {
	require.Equal(t, zeroAccountFriendly, ToFriendlyAddress("0:"+zeroAccountHex))
	require.Equal(t, walletFriendly, ToFriendlyAddress("0:"+walletHex))
	require.Equal(t, walletFriendly, ToFriendlyAddress("0:"+strings.ToUpper(walletHex)))
}

func TestToFriendlyAddressEncodesBareHex(t *testing.T) {
	require.Equal(t, walletFriendly, ToFriendlyAddress(walletHex))
}

func TestToFriendlyAddressStripsOneLeadingZeroFrom65Chars(t *testing.T) {
	require.Equal(t, walletFriendly, ToFriendlyAddress("0"+walletHex))
}

func TestToFriendlyAddressKeepsLast64Chars(t *testing.T) {
	require.Equal(t, walletFriendly, ToFriendlyAddress("ff"+walletHex))
	require.Equal(t, walletFriendly, ToFriendlyAddress("f"+walletHex))
}

func TestToFriendlyAddressReturnsUnknownShapesUnchanged(t *testing.T) {
	for _, addr := range []string{
		"",
		"hello",
		"0:nothex",
		"0:" + walletHex[:10],
		"zz" + walletHex[2:],
		walletHex[:63],
		"abc" + walletHex,
	} {
		require.Equal(t, addr, ToFriendlyAddress(addr))
	}
}
