package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Layr-Labs/zksync-signer-go/pkg/config"
	"github.com/Layr-Labs/zksync-signer-go/pkg/encoder"
	"github.com/Layr-Labs/zksync-signer-go/pkg/logger"
	"github.com/Layr-Labs/zksync-signer-go/pkg/packing"
	"github.com/Layr-Labs/zksync-signer-go/pkg/persistence"
	"github.com/Layr-Labs/zksync-signer-go/pkg/persistence/badger"
	"github.com/Layr-Labs/zksync-signer-go/pkg/persistence/memory"
	"github.com/Layr-Labs/zksync-signer-go/pkg/persistence/redis"
	"github.com/Layr-Labs/zksync-signer-go/pkg/signer"
	"github.com/Layr-Labs/zksync-signer-go/pkg/types"
	"github.com/Layr-Labs/zksync-signer-go/pkg/zkCrypto"
	"github.com/Layr-Labs/zksync-signer-go/pkg/zkCrypto/fakeZkCrypto"
	"github.com/Layr-Labs/zksync-signer-go/pkg/zkCrypto/nativeZkCrypto"
)

func newLogger(c *cli.Context) (*zap.Logger, error) {
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: c.Bool("verbose")})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return l, nil
}

func newCrypto(c *cli.Context, l *zap.Logger) (zkCrypto.IZkCrypto, error) {
	if c.Bool("insecure-fake-crypto") {
		l.Sugar().Warn("Using the fake crypto backend - signatures will NOT be accepted by the network")
		return fakeZkCrypto.NewFakeZkCrypto(), nil
	}
	return nativeZkCrypto.NewNativeZkCrypto(l)
}

func newSigner(c *cli.Context, zc zkCrypto.IZkCrypto, l *zap.Logger) (*signer.ZkSigner, error) {
	chainId, err := config.ParseChain(c.String("chain"))
	if err != nil {
		return nil, err
	}
	cfg := &config.SignerConfig{
		PrivateKey: c.String("private-key"),
		ChainID:    chainId,
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid signer config: %w", err)
	}
	return signer.NewZkSignerFromEthereumKey(cfg.PrivateKey, cfg.ChainID, zc, l)
}

// newStore returns nil when no outbox backend is configured
func newStore(c *cli.Context, l *zap.Logger) (persistence.ISignedTxStore, error) {
	cfg := &config.StoreConfig{
		Type: config.StoreType(c.String("store")),
		Path: c.String("store-path"),
		Redis: &config.RedisConfig{
			Address:   c.String("redis-address"),
			Password:  c.String("redis-password"),
			DB:        c.Int("redis-db"),
			KeyPrefix: c.String("redis-key-prefix"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid store config: %w", err)
	}

	switch cfg.Type {
	case config.StoreType_Memory:
		return memory.NewMemoryStore(), nil
	case config.StoreType_Badger:
		return badger.NewBadgerStore(cfg.Path, l)
	case config.StoreType_Redis:
		return redis.NewRedisStore(cfg.Redis, l)
	default:
		return nil, nil
	}
}

func requireStore(c *cli.Context, l *zap.Logger) (persistence.ISignedTxStore, error) {
	store, err := newStore(c, l)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("no outbox configured, set --store or %s", config.EnvStoreType)
	}
	return store, nil
}

func readTransaction(c *cli.Context) (types.Transaction, error) {
	path := c.String("tx")
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(c.App.Reader)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read transaction: %w", err)
	}
	return types.UnmarshalTransaction(data)
}

func writeJSON(c *cli.Context, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, string(out))
	return err
}

type encodeOutput struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	TxHash  string `json:"txHash"`
}

func encodeCommand(c *cli.Context) error {
	l, err := newLogger(c)
	if err != nil {
		return err
	}
	tx, err := readTransaction(c)
	if err != nil {
		return err
	}

	enc := encoder.NewEncoder(nil)
	// only swaps need the order hasher
	if tx.TxType() == types.TxType_Swap {
		zc, err := newCrypto(c, l)
		if err != nil {
			return err
		}
		enc = encoder.NewEncoder(zc)
	}

	msg, err := enc.Encode(tx)
	if err != nil {
		return err
	}
	return writeJSON(c, encodeOutput{Type: tx.TxType().String(), Message: msg.Hex(), TxHash: encoder.TxHash(msg)})
}

func signCommand(c *cli.Context) error {
	l, err := newLogger(c)
	if err != nil {
		return err
	}
	tx, err := readTransaction(c)
	if err != nil {
		return err
	}
	zc, err := newCrypto(c, l)
	if err != nil {
		return err
	}
	s, err := newSigner(c, zc, l)
	if err != nil {
		return err
	}

	signed, err := s.SignTransaction(tx)
	if err != nil {
		return err
	}
	record, err := persistence.NewSignedTxRecord(signed.Tx, signed.Message, signed.Signature, signed.TxHash, time.Now())
	if err != nil {
		return err
	}

	store, err := newStore(c, l)
	if err != nil {
		return err
	}
	if store != nil {
		defer func() { _ = store.Close() }()
		if err := store.SaveSignedTx(record); err != nil {
			return fmt.Errorf("failed to save to outbox: %w", err)
		}
		l.Sugar().Infow("Saved signed transaction to outbox", "txHash", record.TxHash, "txType", record.TxType)
	}
	return writeJSON(c, record)
}

type pubkeyOutput struct {
	PubKey     string `json:"pubKey"`
	PubKeyHash string `json:"pubKeyHash"`
}

func pubkeyCommand(c *cli.Context) error {
	l, err := newLogger(c)
	if err != nil {
		return err
	}
	zc, err := newCrypto(c, l)
	if err != nil {
		return err
	}
	s, err := newSigner(c, zc, l)
	if err != nil {
		return err
	}
	pub := s.PublicKey()
	return writeJSON(c, pubkeyOutput{PubKey: hex.EncodeToString(pub[:]), PubKeyHash: s.PubKeyHash().String()})
}

type packOutput struct {
	Kind     string `json:"kind"`
	Value    string `json:"value"`
	Packable bool   `json:"packable"`
	Packed   string `json:"packed,omitempty"`
	Closest  string `json:"closest"`
}

func packValue(f packing.Format, kind, raw string) (*packOutput, error) {
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, fmt.Errorf("%s %q is not a base 10 integer", kind, raw)
	}
	out := &packOutput{Kind: kind, Value: v.String(), Packable: f.IsPackable(v)}
	if closest := f.ClosestPackable(v); closest != nil {
		out.Closest = closest.String()
	}
	if out.Packable {
		packed, err := f.Pack(v)
		if err != nil {
			return nil, err
		}
		out.Packed = hex.EncodeToString(packed)
	}
	return out, nil
}

func packCommand(c *cli.Context) error {
	var results []*packOutput
	if raw := c.String("amount"); raw != "" {
		out, err := packValue(packing.AmountFormat, "amount", raw)
		if err != nil {
			return err
		}
		results = append(results, out)
	}
	if raw := c.String("fee"); raw != "" {
		out, err := packValue(packing.FeeFormat, "fee", raw)
		if err != nil {
			return err
		}
		results = append(results, out)
	}
	if len(results) == 0 {
		return fmt.Errorf("one of --amount or --fee is required")
	}
	return writeJSON(c, results)
}

func outboxListCommand(c *cli.Context) error {
	l, err := newLogger(c)
	if err != nil {
		return err
	}
	store, err := requireStore(c, l)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	records, err := store.ListSignedTxs()
	if err != nil {
		return err
	}
	return writeJSON(c, records)
}

func outboxGetCommand(c *cli.Context) error {
	l, err := newLogger(c)
	if err != nil {
		return err
	}
	store, err := requireStore(c, l)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	record, err := store.LoadSignedTx(c.String("hash"))
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("no signed transaction %s in outbox", c.String("hash"))
	}
	return writeJSON(c, record)
}

func outboxDeleteCommand(c *cli.Context) error {
	l, err := newLogger(c)
	if err != nil {
		return err
	}
	store, err := requireStore(c, l)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.DeleteSignedTx(c.String("hash")); err != nil {
		return err
	}
	l.Sugar().Infow("Deleted signed transaction from outbox", "txHash", c.String("hash"))
	return nil
}
