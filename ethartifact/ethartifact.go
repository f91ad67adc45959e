package ethartifact

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/0xsequence/fastabi/ethcontract"
	"github.com/0xsequence/fastabi/sonic"
	"github.com/ethereum/go-ethereum/common"
)

// Artifact is a compiled contract: its name, bytecode and a Coder for the
// functions of its ABI.
type Artifact struct {
	ContractName string
	ABI          json.RawMessage
	Bin          []byte
	DeployedBin  []byte
	Coder        *ethcontract.Coder
}

func (a Artifact) EncodeInput(method string, values []any) (string, error) {
	return a.Coder.EncodeInput(method, values)
}

func (a Artifact) DecodeInput(method string, hexData string) ([]any, error) {
	return a.Coder.DecodeInput(method, hexData)
}

func (a Artifact) DecodeOutput(method string, hexData string) ([]any, error) {
	return a.Coder.DecodeOutput(method, hexData)
}

func ParseArtifactJSON(artifactJSON string) (Artifact, error) {
	rawArtifact, err := parseRawArtifact([]byte(artifactJSON))
	if err != nil {
		return Artifact{}, err
	}
	return newArtifact(rawArtifact, newCoder)
}

func MustParseArtifactJSON(artifactJSON string) Artifact {
	artifact, err := ParseArtifactJSON(artifactJSON)
	if err != nil {
		panic(err)
	}
	return artifact
}

// ParseArtifactFile reads a truffle or hardhat artifact, falling back to the
// foundry layout.
func ParseArtifactFile(path string) (Artifact, error) {
	rawArtifact, err := ParseRawArtifactFile(path)
	if err != nil {
		return Artifact{}, err
	}
	return newArtifact(rawArtifact, newCoder)
}

func newCoder(abiJSON []byte) (*ethcontract.Coder, error) {
	return ethcontract.NewCoder(string(abiJSON))
}

func newArtifact(rawArtifact RawArtifact, coderFor func([]byte) (*ethcontract.Coder, error)) (Artifact, error) {
	var artifact Artifact

	artifact.ContractName = rawArtifact.ContractName
	if rawArtifact.ContractName == "" {
		return Artifact{}, fmt.Errorf("contract name is empty")
	}

	coder, err := coderFor(rawArtifact.ABI)
	if err != nil {
		return Artifact{}, fmt.Errorf("unable to parse abi json in artifact %s: %w", rawArtifact.ContractName, err)
	}
	artifact.ABI = rawArtifact.ABI
	artifact.Coder = coder

	if len(rawArtifact.Bytecode) > 2 {
		artifact.Bin = common.FromHex(rawArtifact.Bytecode)
	}
	if len(rawArtifact.DeployedBytecode) > 2 {
		artifact.DeployedBin = common.FromHex(rawArtifact.DeployedBytecode)
	}

	return artifact, nil
}

type RawArtifact struct {
	ContractName     string          `json:"contractName"`
	ABI              json.RawMessage `json:"abi"`
	Bytecode         string          `json:"bytecode"`
	DeployedBytecode string          `json:"deployedBytecode"`
}

type FoundryRawArtifact struct {
	ABI      json.RawMessage `json:"abi"`
	Bytecode struct {
		Object string `json:"object"`
	} `json:"bytecode"`
	DeployedBytecode struct {
		Object string `json:"object"`
	} `json:"deployedBytecode"`
	Metadata struct {
		Settings struct {
			CompilationTarget map[string]string `json:"compilationTarget"`
		} `json:"settings"`
	} `json:"metadata"`
}

func (f FoundryRawArtifact) ToRawArtifact() (RawArtifact, error) {
	// Contract name is the only value in the compilation target map
	if len(f.Metadata.Settings.CompilationTarget) != 1 {
		return RawArtifact{}, fmt.Errorf("expected exactly one compilation target, got %d", len(f.Metadata.Settings.CompilationTarget))
	}
	var contractName string
	for _, v := range f.Metadata.Settings.CompilationTarget {
		contractName = v
	}

	return RawArtifact{
		ContractName:     contractName,
		ABI:              f.ABI,
		Bytecode:         f.Bytecode.Object,
		DeployedBytecode: f.DeployedBytecode.Object,
	}, nil
}

func ParseRawArtifactFile(path string) (RawArtifact, error) {
	filedata, err := os.ReadFile(path)
	if err != nil {
		return RawArtifact{}, err
	}
	return parseRawArtifact(filedata)
}

func parseRawArtifact(data []byte) (RawArtifact, error) {
	var artifact RawArtifact
	err := sonic.Config.Unmarshal(data, &artifact)
	if err != nil {
		// Try parsing as foundry artifact
		var foundryArtifact FoundryRawArtifact
		if foundryErr := sonic.Config.Unmarshal(data, &foundryArtifact); foundryErr != nil {
			// Return the original error
			return RawArtifact{}, err
		}
		return foundryArtifact.ToRawArtifact()
	}
	if len(artifact.ABI) == 0 {
		return RawArtifact{}, fmt.Errorf("artifact has no abi")
	}
	return artifact, nil
}
