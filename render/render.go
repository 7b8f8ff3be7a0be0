// Package render implements showTransaction: the text rendering of a
// committed or poisoned TransactionEntry for audit/replay (spec §6's
// "Persisted entry layout"). Per §7's propagation policy, a failure while
// reading any one field is caught right there and printed as an
// "<exception> ..." marker instead of aborting the whole render.
package render

import (
	"fmt"
	"strings"

	"github.com/therewillbecode/Fae-1/storage"
	"github.com/therewillbecode/Fae-1/types"
)

// ShowTransaction renders entry under txID per spec §6's layout:
//
//	Transaction <txID>
//	  result: <rendered result or exception marker>
//	  outputs: [i0, i1, ...]
//	  signers:
//	    <name>: <public-key>
//	  input <shortID>
//	    outputs: [i0, i1, ...]
//	    versions:
//	      <versionID>: <type-rep>
//
// Input blocks appear in inputOrder. An input block has no nonce line: an
// InputOutputVersions record carries no nonce to print.
func ShowTransaction(txID types.TransactionID, entry *storage.TransactionEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Transaction %s\n", txID)

	fmt.Fprintf(&b, "  result: %s\n", field(func() (interface{}, error) { return entry.Result() }))
	fmt.Fprintf(&b, "  outputs: %s\n", fieldOutputs(entry.Outputs))
	fmt.Fprintf(&b, "  signers:\n")
	renderSigners(&b, entry)

	order, err := entry.InputOrder()
	if err != nil {
		fmt.Fprintf(&b, "  inputs: <exception> %v\n", err)
		return b.String()
	}

	inputOutputs, err := entry.InputOutputs()
	if err != nil {
		fmt.Fprintf(&b, "  inputs: <exception> %v\n", err)
		return b.String()
	}

	for _, short := range order {
		fmt.Fprintf(&b, "  input %s\n", short)
		iov, ok := inputOutputs[short]
		if !ok {
			fmt.Fprintf(&b, "    <exception> missing input-output record\n")
			continue
		}
		renderInput(&b, iov)
	}

	return b.String()
}

func renderSigners(b *strings.Builder, entry *storage.TransactionEntry) {
	signers, err := entry.Signers()
	if err != nil {
		fmt.Fprintf(b, "    <exception> %v\n", err)
		return
	}
	for name, pk := range signers {
		fmt.Fprintf(b, "    %s: %s\n", name, pk)
	}
}

func renderInput(b *strings.Builder, iov *storage.InputOutputVersions) {
	fmt.Fprintf(b, "    outputs: %s\n", fieldOutputs(func() ([]*storage.OutputSlot, error) { return iov.Outputs, nil }))
	fmt.Fprintf(b, "    versions:\n")
	for vID, typeID := range iov.Versions {
		fmt.Fprintf(b, "      %s: %s\n", vID, typeID)
	}
}

// field runs get, catching a returned error into spec §7's exception
// marker rather than letting it propagate out of ShowTransaction.
func field(get func() (interface{}, error)) string {
	v, err := get()
	if err != nil {
		return fmt.Sprintf("<exception> %v", err)
	}
	return fmt.Sprintf("%v", v)
}

func fieldOutputs(get func() ([]*storage.OutputSlot, error)) string {
	slots, err := get()
	if err != nil {
		return fmt.Sprintf("<exception> %v", err)
	}
	names := make([]string, len(slots))
	for i := range slots {
		names[i] = fmt.Sprintf("i%d", i)
	}
	return "[" + strings.Join(names, ", ") + "]"
}
