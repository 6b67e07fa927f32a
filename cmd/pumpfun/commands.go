package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"

	"pump-fun-sdk-go/internal/client"
	"pump-fun-sdk-go/internal/wallet"
	"pump-fun-sdk-go/pkg/anchor"
	"pump-fun-sdk-go/pkg/pumpfun"
	"pump-fun-sdk-go/pkg/utils"
)

func curveFlags(fs *flag.FlagSet) func(ctx context.Context, app *App) error {
	addresses := fs.String("address", "", "Bonding curve address, comma separated for several")
	out := fs.String("out", "", "Write the analysis as JSON to this file")

	return func(ctx context.Context, app *App) error {
		keys, err := parseAddressList(*addresses)
		if err != nil {
			return err
		}

		rpc := client.NewClient(app.config, app.logger.Logger)
		defer rpc.Close()
		reader := client.NewCurveReader(rpc, app.config.Reader.Parallel, app.logger.Logger)

		start := time.Now()
		analyses, err := reader.AnalyzeMany(ctx, keys)
		if err != nil {
			return err
		}
		app.logger.LogLatency("analyze_curves", time.Since(start))

		if *out != "" {
			return writeAnalyses(*out, analyses)
		}
		for i, analysis := range analyses {
			fmt.Printf("%s\n", keys[i])
			if err := analysis.Print(os.Stdout); err != nil {
				return err
			}
		}
		return nil
	}
}

func writeAnalyses(path string, analyses []*pumpfun.CurveAnalysis) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if len(analyses) == 1 {
		return analyses[0].WriteJSON(f)
	}
	return writeJSON(f, analyses)
}

func quoteFlags(fs *flag.FlagSet) func(ctx context.Context, app *App) error {
	address := fs.String("address", "", "Bonding curve address")
	amount := fs.Float64("amount", 0, "Input amount, SOL when buying and tokens when selling")
	buy := fs.Bool("buy", false, "Quote a buy instead of a sell")

	return func(ctx context.Context, app *App) error {
		key, err := pumpfun.ParsePubkey("address", *address)
		if err != nil {
			return err
		}

		rpc := client.NewClient(app.config, app.logger.Logger)
		defer rpc.Close()

		state, err := client.NewCurveReader(rpc, 1, app.logger.Logger).State(ctx, key)
		if err != nil {
			return err
		}
		if err := state.CheckTradable(); err != nil {
			app.logger.WithAccount(key.String()).WithError(err).Warn("Curve no longer trades on the program")
		}

		price, err := pumpfun.SpotPrice(state)
		if err != nil {
			return err
		}
		output, err := pumpfun.QuoteOutput(state, *amount, *buy)
		if err != nil {
			return err
		}

		in, unit := "SOL", "tokens"
		if !*buy {
			in, unit = "tokens", "SOL"
		}
		fmt.Printf("%s\n", state)
		fmt.Printf("price_sol: %.12f\n", price)
		fmt.Printf("quote: %v %s -> %.9f %s\n", *amount, in, output, unit)
		return nil
	}
}

func decodeFlags(fs *flag.FlagSet) func(ctx context.Context, app *App) error {
	txPath := fs.String("tx", "", "Transaction document (JSON)")
	idlPath := fs.String("idl", "", "IDL file, the configured or built-in pump IDL when empty")

	return func(ctx context.Context, app *App) error {
		if *txPath == "" {
			return errors.New("-tx is required")
		}

		idl, err := loadIDL(app, *idlPath)
		if err != nil {
			return err
		}

		doc, err := pumpfun.LoadTransactionDocument(*txPath)
		if err != nil {
			return err
		}
		decoded, err := pumpfun.DecodeTransaction(doc, idl)
		if err != nil {
			return err
		}

		app.logger.WithFields(logrus.Fields{
			"idl":          idl.Name,
			"instructions": len(decoded),
		}).Debug("Decoded transaction")

		return writeJSON(os.Stdout, decoded)
	}
}

func loadIDL(app *App, path string) (*anchor.IDL, error) {
	if path == "" {
		path = app.config.IDLPath
	}
	if path == "" {
		return anchor.PumpFunIDL, nil
	}
	return anchor.LoadIDL(path)
}

type accountOutput struct {
	Pubkey     string `json:"pubkey"`
	IsSigner   bool   `json:"is_signer"`
	IsWritable bool   `json:"is_writable"`
}

type instructionOutput struct {
	ProgramID string          `json:"program_id"`
	Accounts  []accountOutput `json:"accounts"`
	Data      string          `json:"data"`
	Message   string          `json:"message,omitempty"`
}

func buildFlags(fs *flag.FlagSet) func(ctx context.Context, app *App) error {
	side := fs.String("side", "buy", "buy or sell")
	mint := fs.String("mint", "", "Token mint address")
	bondingCurve := fs.String("bonding-curve", "", "Bonding curve address, derived from the mint when empty")
	associatedBondingCurve := fs.String("associated-bonding-curve", "", "Bonding curve token account, derived when empty")
	amount := fs.Float64("amount", 0, "SOL to spend when buying, tokens to sell when selling")
	withMessage := fs.Bool("message", false, "Fetch a blockhash and also print the base64 message to sign")

	return func(ctx context.Context, app *App) error {
		payer, err := wallet.Load(app.config.Wallet)
		if err != nil {
			return err
		}

		accounts, err := tradeAccounts(payer.PublicKey(), *mint, *bondingCurve, *associatedBondingCurve)
		if err != nil {
			return err
		}

		var ix *pumpfun.Instruction
		switch *side {
		case "buy":
			ix, err = pumpfun.BuildBuy(accounts.Payer, accounts.Mint, accounts.BondingCurve, accounts.AssociatedBondingCurve, *amount)
		case "sell":
			ix, err = pumpfun.BuildSell(accounts.Payer, accounts.Mint, accounts.BondingCurve, accounts.AssociatedBondingCurve, *amount)
		default:
			return fmt.Errorf("side must be buy or sell, got '%s'", *side)
		}
		if err != nil {
			return err
		}

		output := instructionOutput{
			ProgramID: ix.ProgramID.String(),
			Data:      utils.EncodeBase58(ix.Data),
		}
		for _, m := range ix.Accounts {
			output.Accounts = append(output.Accounts, accountOutput{
				Pubkey:     m.PublicKey().String(),
				IsSigner:   m.IsSigner(),
				IsWritable: m.IsWritable(),
			})
		}

		if *withMessage {
			rpc := client.NewClient(app.config, app.logger.Logger)
			defer rpc.Close()

			blockhash, err := rpc.GetLatestBlockhash(ctx)
			if err != nil {
				return err
			}
			tx, err := pumpfun.NewUnsignedTransaction(blockhash, payer.PublicKey(), ix)
			if err != nil {
				return err
			}
			message, err := tx.Message.MarshalBinary()
			if err != nil {
				return fmt.Errorf("failed to serialize message: %w", err)
			}
			output.Message = utils.EncodeBase64(message)
		}

		return writeJSON(os.Stdout, output)
	}
}

// tradeAccounts parses the given accounts and derives the curve accounts left empty
func tradeAccounts(payer solana.PublicKey, mint, bondingCurve, associatedBondingCurve string) (pumpfun.TradeAccounts, error) {
	mintKey, err := pumpfun.ParsePubkey("mint", mint)
	if err != nil {
		return pumpfun.TradeAccounts{}, err
	}
	accounts, err := pumpfun.DeriveTradeAccounts(payer, mintKey)
	if err != nil {
		return pumpfun.TradeAccounts{}, err
	}

	if bondingCurve != "" {
		if accounts.BondingCurve, err = pumpfun.ParsePubkey("bonding_curve", bondingCurve); err != nil {
			return pumpfun.TradeAccounts{}, err
		}
		if accounts.AssociatedBondingCurve, _, err = pumpfun.DeriveAssociatedBondingCurve(accounts.BondingCurve, mintKey); err != nil {
			return pumpfun.TradeAccounts{}, err
		}
	}
	if associatedBondingCurve != "" {
		if accounts.AssociatedBondingCurve, err = pumpfun.ParsePubkey("associated_bonding_curve", associatedBondingCurve); err != nil {
			return pumpfun.TradeAccounts{}, err
		}
	}
	return accounts, nil
}

func monitorFlags(fs *flag.FlagSet) func(ctx context.Context, app *App) error {
	kind := fs.String("kind", "logs", "Subscription kind: logs, account or block")
	address := fs.String("address", "", "Bonding curve to watch (account kind)")
	newTokens := fs.Bool("new-tokens", false, "Only print logs of Create instructions (logs kind)")

	return func(ctx context.Context, app *App) error {
		sub := client.NewSubscriber(app.config, app.logger.Logger)
		app.logger.LogConnection("websocket", "connecting", app.config.WSUrl)

		var err error
		switch client.SubscriptionKind(*kind) {
		case client.SubscribeAccount:
			var key solana.PublicKey
			if key, err = pumpfun.ParsePubkey("address", *address); err != nil {
				return err
			}
			err = sub.WatchBondingCurve(ctx, key, func(state *pumpfun.BondingCurveState) error {
				analysis, err := pumpfun.AnalyzeState(state)
				if err != nil {
					return err
				}
				return analysis.WriteJSON(os.Stdout)
			})
		case client.SubscribeLogs:
			if *newTokens {
				err = sub.MonitorNewTokens(ctx, func(n client.LogsNotification) error {
					return writeJSON(os.Stdout, n.Result.Value)
				})
				break
			}
			err = sub.Subscribe(ctx, client.SubscribeLogs, pumpfun.ProgramID.String(), printParams)
		case client.SubscribeBlock:
			err = sub.MonitorBlocks(ctx, func(n client.BlockNotification) error {
				fmt.Printf("block notification slot=%d bytes=%d\n", n.Result.Context.Slot, len(n.Result.Value))
				return nil
			})
		default:
			err = sub.Subscribe(ctx, client.SubscriptionKind(*kind), "", printParams)
		}

		if errors.Is(err, context.Canceled) {
			app.logger.LogConnection("websocket", "closed", "interrupted")
			return nil
		}
		return err
	}
}

func printParams(message client.WSMessage) error {
	_, err := fmt.Printf("%s %s\n", message.Method, message.Params)
	return err
}

func parseAddressList(list string) ([]solana.PublicKey, error) {
	var keys []solana.PublicKey
	for _, s := range strings.Split(list, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key, err := pumpfun.ParsePubkey("address", s)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return nil, errors.New("-address is required")
	}
	return keys, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
