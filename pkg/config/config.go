package config

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Environment variable names for the signer tooling
const (
	EnvPrivateKey     = "ZKSYNC_PRIVATE_KEY"
	EnvChainID        = "ZKSYNC_CHAIN_ID"
	EnvStoreType      = "ZKSYNC_STORE_TYPE"
	EnvStorePath      = "ZKSYNC_STORE_PATH"
	EnvRedisAddress   = "ZKSYNC_REDIS_ADDRESS"
	EnvRedisPassword  = "ZKSYNC_REDIS_PASSWORD"
	EnvRedisDB        = "ZKSYNC_REDIS_DB"
	EnvRedisKeyPrefix = "ZKSYNC_REDIS_KEY_PREFIX"
	EnvVerbose        = "ZKSYNC_VERBOSE"
)

// ChainId selects the key derivation domain of the L2 signer. It never changes
// the bytes of an encoded transaction.
type ChainId uint

const (
	ChainId_Mainnet   ChainId = 1
	ChainId_Ropsten   ChainId = 3
	ChainId_Rinkeby   ChainId = 4
	ChainId_Goerli    ChainId = 5
	ChainId_Localhost ChainId = 9
)

type ChainName string

const (
	ChainName_Mainnet   ChainName = "mainnet"
	ChainName_Ropsten   ChainName = "ropsten"
	ChainName_Rinkeby   ChainName = "rinkeby"
	ChainName_Goerli    ChainName = "goerli"
	ChainName_Localhost ChainName = "localhost"
)

var ChainIdToName = map[ChainId]ChainName{
	ChainId_Mainnet:   ChainName_Mainnet,
	ChainId_Ropsten:   ChainName_Ropsten,
	ChainId_Rinkeby:   ChainName_Rinkeby,
	ChainId_Goerli:    ChainName_Goerli,
	ChainId_Localhost: ChainName_Localhost,
}
var ChainNameToId = map[ChainName]ChainId{
	ChainName_Mainnet:   ChainId_Mainnet,
	ChainName_Ropsten:   ChainId_Ropsten,
	ChainName_Rinkeby:   ChainId_Rinkeby,
	ChainName_Goerli:    ChainId_Goerli,
	ChainName_Localhost: ChainId_Localhost,
}

func (c ChainId) String() string {
	if name, ok := ChainIdToName[c]; ok {
		return string(name)
	}
	return fmt.Sprintf("chain-%d", uint(c))
}

// IsSupported reports whether the chain has a known derivation domain
func (c ChainId) IsSupported() bool {
	_, ok := ChainIdToName[c]
	return ok
}

// GetSupportedChainIDs returns all supported chain IDs
func GetSupportedChainIDs() []ChainId {
	return []ChainId{
		ChainId_Mainnet,
		ChainId_Ropsten,
		ChainId_Rinkeby,
		ChainId_Goerli,
		ChainId_Localhost,
	}
}

// GetSupportedChainIDsString returns supported chain IDs as strings for CLI help
func GetSupportedChainIDsString() string {
	parts := make([]string, 0, len(ChainIdToName))
	for _, id := range GetSupportedChainIDs() {
		parts = append(parts, fmt.Sprintf("%d (%s)", id, ChainIdToName[id]))
	}
	return strings.Join(parts, ", ")
}

// ParseChain accepts either a numeric chain id or a chain name
func ParseChain(s string) (ChainId, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if id, ok := ChainNameToId[ChainName(s)]; ok {
		return id, nil
	}
	var n uint
	if _, err := fmt.Sscanf(s, "%d", &n); err == nil {
		id := ChainId(n)
		if id.IsSupported() {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unsupported chain %q. Supported: %s", s, GetSupportedChainIDsString())
}

type StoreType string

const (
	StoreType_None   StoreType = ""
	StoreType_Memory StoreType = "memory"
	StoreType_Badger StoreType = "badger"
	StoreType_Redis  StoreType = "redis"
)

// SignerConfig holds the Ethereum key the L2 signing key is derived from
type SignerConfig struct {
	PrivateKey string  `json:"privateKey" yaml:"privateKey"`
	ChainID    ChainId `json:"chainId" yaml:"chainId"`
}

func (sc *SignerConfig) Validate() error {
	var allErrors field.ErrorList
	keyPath := field.NewPath("privateKey")
	if sc.PrivateKey == "" {
		allErrors = append(allErrors, field.Required(keyPath, "privateKey is required"))
	} else {
		key := sc.PrivateKey
		if !strings.HasPrefix(key, "0x") {
			key = "0x" + key
		}
		raw, err := hexutil.Decode(key)
		if err != nil {
			allErrors = append(allErrors, field.Invalid(keyPath, "<redacted>", "privateKey must be hex encoded"))
		} else if len(raw) != 32 {
			allErrors = append(allErrors, field.Invalid(keyPath, "<redacted>",
				fmt.Sprintf("privateKey must be 32 bytes, got %d", len(raw))))
		}
	}
	if !sc.ChainID.IsSupported() {
		supported := make([]string, 0, len(ChainIdToName))
		for _, id := range GetSupportedChainIDs() {
			supported = append(supported, fmt.Sprintf("%d", id))
		}
		allErrors = append(allErrors, field.NotSupported(field.NewPath("chainId"), sc.ChainID, supported))
	}
	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

type RedisConfig struct {
	Address   string `json:"address" yaml:"address"`
	Password  string `json:"password" yaml:"password"`
	DB        int    `json:"db" yaml:"db"`
	KeyPrefix string `json:"keyPrefix" yaml:"keyPrefix"`
}

// StoreConfig selects where signed transactions are parked for submission
type StoreConfig struct {
	Type  StoreType    `json:"type" yaml:"type"`
	Path  string       `json:"path" yaml:"path"`
	Redis *RedisConfig `json:"redis,omitempty" yaml:"redis,omitempty"`
}

func (sc *StoreConfig) Validate() error {
	var allErrors field.ErrorList
	switch sc.Type {
	case StoreType_None, StoreType_Memory:
	case StoreType_Badger:
		if sc.Path == "" {
			allErrors = append(allErrors, field.Required(field.NewPath("path"), "path is required for badger store"))
		}
	case StoreType_Redis:
		redisPath := field.NewPath("redis")
		if sc.Redis == nil {
			allErrors = append(allErrors, field.Required(redisPath, "redis config is required for redis store"))
			break
		}
		if sc.Redis.Address == "" {
			allErrors = append(allErrors, field.Required(redisPath.Child("address"), "address is required"))
		}
		if sc.Redis.DB < 0 || sc.Redis.DB > 15 {
			allErrors = append(allErrors, field.Invalid(redisPath.Child("db"), sc.Redis.DB, "db must be between 0-15"))
		}
	default:
		allErrors = append(allErrors, field.NotSupported(field.NewPath("type"), sc.Type,
			[]StoreType{StoreType_Memory, StoreType_Badger, StoreType_Redis}))
	}
	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}
