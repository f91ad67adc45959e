package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	owner       = "0x6615e4e985bf0d137196897dfa182dbd7127f54f"
	ownerWord   = "0000000000000000000000006615e4e985bf0d137196897dfa182dbd7127f54f"
	amountWord  = "00000000000000000000000000000000000000000000000000000000000003e8"
	transferHex = "0xa9059cbb" + ownerWord + amountWord
	balanceHex  = "0x70a08231" + ownerWord
)

func execCmd(cmd *cobra.Command, args ...string) (string, error) {
	actual := new(bytes.Buffer)
	cmd.SetOut(actual)
	cmd.SetErr(actual)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return "", err
	}
	return actual.String(), nil
}

// execCmdStreams runs cmd with separate out and err buffers, and also returns
// whatever was written to the process stdout behind the command's back.
func execCmdStreams(t *testing.T, cmd *cobra.Command, args ...string) (string, string, string, error) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	runErr := cmd.Execute()

	require.NoError(t, w.Close())
	leaked, err := io.ReadAll(r)
	require.NoError(t, err)
	return out.String(), errOut.String(), string(leaked), runErr
}

func Test_EncodeCmd(t *testing.T) {
	res, err := execCmd(NewEncodeCmd(), "--abi", "testdata/ERC20.abi.json", "--fn", "transfer", "--args", `["`+owner+`", 1000]`)
	require.NoError(t, err)
	assert.Equal(t, transferHex+"\n", res)

	res, err = execCmd(NewEncodeCmd(), "--abi", "testdata/ERC20.abi.json", "--fn", "balanceOf", "--args", `["42"]`, "--output", "--no-prefix")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("0", 62)+"2a\n", res)
}

func Test_EncodeCmd_Errors(t *testing.T) {
	_, err := execCmd(NewEncodeCmd(), "--fn", "transfer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "please pass either --abi or --artifact")

	_, err = execCmd(NewEncodeCmd(), "--abi", "testdata/ERC20.abi.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "please pass --fn")

	_, err = execCmd(NewEncodeCmd(), "--abi", "testdata/ERC20.abi.json", "--fn", "transfer", "--args", `["`+owner+`"]`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arity mismatch")

	_, err = execCmd(NewEncodeCmd(), "--abi", "testdata/ERC20.abi.json", "--fn", "mint", "--args", `[]`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "function not found")
}

func Test_DecodeInputCmd(t *testing.T) {
	res, err := execCmd(NewDecodeInputCmd(), "--abi", "testdata/ERC20.abi.json", "--fn", "transfer", "--data", transferHex)
	require.NoError(t, err)
	assert.Equal(t, `["`+owner+`","1000"]`+"\n", res)

	// functions are found by selector when --fn is not given, output keeps the
	// order of the payloads
	res, err = execCmd(NewDecodeInputCmd(), "--abi", "testdata/ERC20.abi.json", "--data", transferHex, "--data", balanceHex)
	require.NoError(t, err)
	assert.Equal(t, "transfer(address,uint256) [\""+owner+"\",\"1000\"]\nbalanceOf(address) [\""+owner+"\"]\n", res)

	res, err = execCmd(NewDecodeInputCmd(), "--abi", "testdata/ERC20.abi.json", "--fn", "transfer", "--data", transferHex, "--tokens")
	require.NoError(t, err)
	assert.Contains(t, res, "ethcoder.Token")

	_, err = execCmd(NewDecodeInputCmd(), "--abi", "testdata/ERC20.abi.json", "--data", transferHex, "--data", "0xa9059cbb00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data 1: ")

	_, err = execCmd(NewDecodeInputCmd(), "--abi", "testdata/ERC20.abi.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "please pass --data")
}

func Test_DecodeOutputCmd(t *testing.T) {
	res, err := execCmd(NewDecodeOutputCmd(), "--abi", "testdata/ERC20.abi.json", "--fn", "totalSupply", "--data", "0x"+amountWord, "--pretty")
	require.NoError(t, err)
	assert.Equal(t, "[\n  \"1000\"\n]\n", res)

	_, err = execCmd(NewDecodeOutputCmd(), "--abi", "testdata/ERC20.abi.json", "--data", "0x"+amountWord)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "please pass --fn")

	_, err = execCmd(NewDecodeOutputCmd(), "--abi", "testdata/ERC20.abi.json", "--fn", "totalSupply", "--data", "0x03e8")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "buffer too short")
}

func Test_FunctionsCmd(t *testing.T) {
	res, err := execCmd(NewFunctionsCmd(), "--abi", "testdata/ERC20.abi.json")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(res), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "0x70a08231"), lines[0])
	assert.Contains(t, lines[0], "balanceOf(address) returns (uint256)")
	assert.True(t, strings.HasPrefix(lines[2], "0xa9059cbb"), lines[2])
	assert.Contains(t, lines[2], "nonpayable")

	res, err = execCmd(NewFunctionsCmd(), "--artifact", "testdata/artifacts", "--contract", "ValueForwarder")
	require.NoError(t, err)
	assert.Contains(t, res, "forwardValue(address,uint256)")

	res, err = execCmd(NewFunctionsCmd(), "--artifact", "testdata/artifacts/ERC20.json", "--filter", "TOTAL")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(res, "\n"))
	assert.Contains(t, res, "0x18160ddd")

	_, err = execCmd(NewFunctionsCmd(), "--artifact", "testdata/artifacts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "please pass --contract")

	_, err = execCmd(NewFunctionsCmd(), "--artifact", "testdata/artifacts", "--contract", "ERC721")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contract ERC721 not found")
}

func Test_ArtifactDirLogging(t *testing.T) {
	out, errOut, leaked, err := execCmdStreams(t, NewFunctionsCmd(), "--artifact", "testdata/artifacts", "--contract", "ERC20")
	require.NoError(t, err)
	assert.Empty(t, leaked)
	assert.Empty(t, errOut)
	assert.NotContains(t, out, "[INFO]")
	assert.Contains(t, out, "0xa9059cbb")

	// verbose logs go to stderr only
	out, errOut, leaked, err = execCmdStreams(t, NewFunctionsCmd(), "--artifact", "testdata/artifacts", "--contract", "ERC20", "-v")
	require.NoError(t, err)
	assert.Empty(t, leaked)
	assert.NotContains(t, out, "loaded")
	assert.Contains(t, errOut, "ethartifact: loaded 2 artifacts from testdata/artifacts")
	assert.Contains(t, errOut, "ethartifact: loaded ERC20 from")
}
