package ethartifact

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/0xsequence/fastabi/ethcontract"
	"github.com/goware/logger"
	"github.com/zeebo/xxh3"
)

var ErrContractNotFound = errors.New("ethartifact: contract not found")

func NewContractRegistry() *ContractRegistry {
	return &ContractRegistry{
		contracts: map[string]Artifact{},
		names:     []string{},
		coders:    map[uint64]*ethcontract.Coder{},
		log:       logger.NewLogger(logger.LogLevel_WARN),
	}
}

// ContractRegistry holds artifacts by contract name. Artifacts registered
// with byte-identical ABI documents share a single Coder. A registry is not
// safe for concurrent writes.
type ContractRegistry struct {
	contracts map[string]Artifact
	names     []string                      // index of contract names in the map
	coders    map[uint64]*ethcontract.Coder // by xxh3 hash of the abi json
	log       logger.Logger
}

func (c *ContractRegistry) SetLogger(log logger.Logger) {
	c.log = log
}

func (c *ContractRegistry) Add(artifact Artifact) error {
	if c.contracts == nil {
		c.contracts = map[string]Artifact{}
	}
	if artifact.ContractName == "" {
		return fmt.Errorf("unable to register contract with empty name")
	}
	if artifact.Coder == nil {
		return fmt.Errorf("unable to register contract %s without a coder", artifact.ContractName)
	}
	if _, ok := c.contracts[artifact.ContractName]; !ok {
		c.names = append(c.names, artifact.ContractName)
		sort.Strings(c.names)
	}
	c.contracts[artifact.ContractName] = artifact
	return nil
}

// RegisterJSON registers a contract from its ABI document and bytecode.
func (c *ContractRegistry) RegisterJSON(contractName string, contractABIJSON string, contractBin []byte) (Artifact, error) {
	coder, err := c.coderFor([]byte(contractABIJSON))
	if err != nil {
		return Artifact{}, err
	}
	r := Artifact{ContractName: contractName, ABI: []byte(contractABIJSON), Bin: contractBin, Coder: coder}
	if err := c.Add(r); err != nil {
		return Artifact{}, err
	}
	return r, nil
}

// AddArtifactJSON parses and registers a truffle, hardhat or foundry artifact.
func (c *ContractRegistry) AddArtifactJSON(artifactJSON string) (Artifact, error) {
	rawArtifact, err := parseRawArtifact([]byte(artifactJSON))
	if err != nil {
		return Artifact{}, err
	}
	return c.addRawArtifact(rawArtifact)
}

func (c *ContractRegistry) addRawArtifact(rawArtifact RawArtifact) (Artifact, error) {
	artifact, err := newArtifact(rawArtifact, c.coderFor)
	if err != nil {
		return Artifact{}, err
	}
	if err := c.Add(artifact); err != nil {
		return Artifact{}, err
	}
	return artifact, nil
}

func (c *ContractRegistry) coderFor(abiJSON []byte) (*ethcontract.Coder, error) {
	if c.coders == nil {
		c.coders = map[uint64]*ethcontract.Coder{}
	}
	key := xxh3.Hash(abiJSON)
	if coder, ok := c.coders[key]; ok {
		return coder, nil
	}
	coder, err := ethcontract.NewCoder(string(abiJSON))
	if err != nil {
		return nil, err
	}
	c.coders[key] = coder
	return coder, nil
}

// LoadDir registers every artifact found in the json files under dir and
// returns how many were loaded. Files that are not artifacts are skipped.
func (c *ContractRegistry) LoadDir(dir string) (int, error) {
	n := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}

		rawArtifact, err := ParseRawArtifactFile(path)
		if err != nil {
			c.log.Warnf("ethartifact: skipping %s: %v", path, err)
			return nil
		}
		if rawArtifact.ContractName == "" {
			c.log.Warnf("ethartifact: skipping %s: not a contract artifact", path)
			return nil
		}
		artifact, err := c.addRawArtifact(rawArtifact)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		c.log.Debugf("ethartifact: loaded %s from %s", artifact.ContractName, path)
		n++
		return nil
	})
	if err != nil {
		return n, err
	}
	c.log.Infof("ethartifact: loaded %d artifacts from %s", n, dir)
	return n, nil
}

func (c *ContractRegistry) MustAdd(artifact Artifact) {
	err := c.Add(artifact)
	if err != nil {
		panic(err)
	}
}

func (c *ContractRegistry) MustRegisterJSON(contractName string, contractABIJSON string, contractBin []byte) Artifact {
	r, err := c.RegisterJSON(contractName, contractABIJSON, contractBin)
	if err != nil {
		panic(err)
	}
	return r
}

func (c *ContractRegistry) MustGet(name string) Artifact {
	artifact, ok := c.Get(name)
	if !ok {
		panic(fmt.Sprintf("ethartifact: ContractRegistry#MustGet failed to get '%s'", name))
	}
	return artifact
}

func (c *ContractRegistry) ContractNames() []string {
	return append([]string{}, c.names...)
}

func (c *ContractRegistry) Get(name string) (Artifact, bool) {
	artifact, ok := c.contracts[name]
	return artifact, ok
}

func (c *ContractRegistry) lookup(contractName string) (Artifact, error) {
	artifact, ok := c.contracts[contractName]
	if !ok {
		return Artifact{}, fmt.Errorf("%w: %s", ErrContractNotFound, contractName)
	}
	return artifact, nil
}

func (c *ContractRegistry) EncodeInput(contractName, method string, values []any) (string, error) {
	artifact, err := c.lookup(contractName)
	if err != nil {
		return "", err
	}
	return artifact.EncodeInput(method, values)
}

func (c *ContractRegistry) DecodeOutput(contractName, method string, hexData string) ([]any, error) {
	artifact, err := c.lookup(contractName)
	if err != nil {
		return nil, err
	}
	return artifact.DecodeOutput(method, hexData)
}
