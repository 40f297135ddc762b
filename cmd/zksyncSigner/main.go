package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/Layr-Labs/zksync-signer-go/pkg/config"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// urfave/cli flags hold parse state, so every command gets its own instances
func signerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "private-key",
			Usage:   "Hex encoded Ethereum private key the L2 signing key is derived from",
			EnvVars: []string{config.EnvPrivateKey},
		},
		&cli.StringFlag{
			Name:    "chain",
			Aliases: []string{"chain-id"},
			Usage:   "Chain the key is derived for: " + config.GetSupportedChainIDsString(),
			Value:   string(config.ChainName_Mainnet),
			EnvVars: []string{config.EnvChainID},
		},
	}
}

func storeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "store",
			Usage:   "Outbox backend: memory, badger or redis. Empty disables the outbox",
			EnvVars: []string{config.EnvStoreType},
		},
		&cli.StringFlag{
			Name:    "store-path",
			Usage:   "Badger data directory",
			Value:   "./zksync-outbox",
			EnvVars: []string{config.EnvStorePath},
		},
		&cli.StringFlag{
			Name:    "redis-address",
			Usage:   "Redis server address (host:port)",
			Value:   "localhost:6379",
			EnvVars: []string{config.EnvRedisAddress},
		},
		&cli.StringFlag{
			Name:    "redis-password",
			EnvVars: []string{config.EnvRedisPassword},
		},
		&cli.IntFlag{
			Name:    "redis-db",
			EnvVars: []string{config.EnvRedisDB},
		},
		&cli.StringFlag{
			Name:    "redis-key-prefix",
			EnvVars: []string{config.EnvRedisKeyPrefix},
		},
	}
}

func txFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "tx",
		Usage:    "Path to a transaction envelope, or - for stdin",
		Required: true,
	}
}

func hashFlag() cli.Flag {
	return &cli.StringFlag{Name: "hash", Usage: "sync-tx hash", Required: true}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "zksync-signer",
		Usage: "Encode and sign zkSync L2 transactions",
		Description: `Builds the canonical byte message of an L2 transaction and signs it with a key
derived from an Ethereum account.

Transactions are read as JSON envelopes: {"type": "Transfer", "tx": {...}}.
Signing requires the zks-crypto native library (build tag zkscrypto).`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Enable verbose logging",
				EnvVars: []string{config.EnvVerbose},
			},
			&cli.BoolFlag{
				Name:  "insecure-fake-crypto",
				Usage: "Use the deterministic test crypto backend. Signatures are NOT valid on L2",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "encode",
				Usage:  "Print the canonical message and tx hash of a transaction",
				Flags:  []cli.Flag{txFlag()},
				Action: encodeCommand,
			},
			{
				Name:   "sign",
				Usage:  "Sign a transaction and optionally park it in the outbox",
				Flags:  append(append([]cli.Flag{txFlag()}, signerFlags()...), storeFlags()...),
				Action: signCommand,
			},
			{
				Name:   "pubkey",
				Usage:  "Print the L2 public key and pubkey hash of an Ethereum key",
				Flags:  signerFlags(),
				Action: pubkeyCommand,
			},
			{
				Name:  "pack",
				Usage: "Pack an amount or fee and report the closest packable value",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "amount", Usage: "Amount in base units"},
					&cli.StringFlag{Name: "fee", Usage: "Fee in base units"},
				},
				Action: packCommand,
			},
			{
				Name:  "outbox",
				Usage: "Inspect signed transactions waiting for submission",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List signed transactions",
						Flags:  storeFlags(),
						Action: outboxListCommand,
					},
					{
						Name:   "get",
						Usage:  "Print one signed transaction",
						Flags:  append([]cli.Flag{hashFlag()}, storeFlags()...),
						Action: outboxGetCommand,
					},
					{
						Name:   "delete",
						Usage:  "Remove a submitted transaction",
						Flags:  append([]cli.Flag{hashFlag()}, storeFlags()...),
						Action: outboxDeleteCommand,
					},
				},
			},
		},
	}
}
