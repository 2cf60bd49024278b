package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"lendingScope/internal/config"
	"lendingScope/internal/history"
	"lendingScope/internal/model"
)

func render(w io.Writer, format string, res history.Result) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(history.NewResponse(res))
	case config.FormatJSONL:
		enc := json.NewEncoder(w)
		for _, tx := range res.Transactions {
			if err := enc.Encode(tx); err != nil {
				return err
			}
		}
		return nil
	default:
		return renderTable(w, res.Transactions)
	}
}

func renderTable(w io.Writer, txs []model.NormalizedTransaction) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tTYPE\tTOKEN\tAMOUNT\tUSD\tMARKET\tCHAIN\tTX")
	for _, tx := range txs {
		amount, usd := "-", "-"
		if tx.Amount != nil {
			amount = *tx.Amount
		}
		if tx.USDAmount != nil {
			usd = *tx.USDAmount
		}
		if tx.Type == model.TxCollateral && tx.Enabled != nil {
			if *tx.Enabled {
				amount = "enabled"
			} else {
				amount = "disabled"
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.Timestamp, tx.Type, tx.TokenSymbol, amount, usd, tx.MarketName, tx.ChainName, tx.TxHash)
	}
	return tw.Flush()
}
