package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/transceptor/qpack"
	"github.com/transceptor/qpack/codec"
)

func main() {
	var (
		inFile       = flag.String("in", "", "Path to a qpack file (- for stdin)")
		hexInput     = flag.String("hex", "", "Inline hex-encoded qpack input")
		fromJSON     = flag.String("from-json", "", "Encode a JSON file to qpack")
		toJSON       = flag.Bool("to-json", false, "Print the decoded value as JSON")
		outFile      = flag.String("out", "", "Write binary output to a file instead of stdout")
		showTags     = flag.Bool("tags", false, "Print the tag-level token listing")
		maxDepth     = flag.Int("max-depth", codec.DefaultDecodeMaxDepth, "Container depth limit for encoding and decoding")
		emptyAsArray = flag.Bool("empty-as-array", false, "Encode empty tables as arrays")
		interactive  = flag.Bool("i", false, "Interactive inspector with TUI")
		verbose      = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		codec.SetLogger(logger)
	}

	if *inFile == "" && *hexInput == "" && *fromJSON == "" {
		fmt.Fprintln(os.Stderr, "Usage: qpack -in <file.qp> [-tags] [-to-json]")
		fmt.Fprintln(os.Stderr, "       qpack -hex <bytes> [-tags]")
		fmt.Fprintln(os.Stderr, "       qpack -from-json <file.json> [-out <file.qp>]")
		fmt.Fprintln(os.Stderr, "       qpack -in <file.qp> -i  (interactive mode)")
		os.Exit(1)
	}

	cfg := qpack.DefaultConfig()
	cfg.SetEncodeEmptyTableAsArray(*emptyAsArray)
	if err := cfg.SetDecodeMaxDepth(*maxDepth); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.SetEncodeMaxDepth(*maxDepth); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *fromJSON != "" {
		if err := encodeJSON(*fromJSON, *outFile, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	data, err := readInput(*inFile, *hexInput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(inputName(*inFile, *hexInput), data, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := dump(data, cfg, *showTags, *toJSON); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func inputName(inFile, hexInput string) string {
	if inFile != "" {
		return inFile
	}
	if hexInput != "" {
		return "(hex input)"
	}
	return "(stdin)"
}

func readInput(inFile, hexInput string) ([]byte, error) {
	if hexInput != "" {
		data, err := hex.DecodeString(strings.Map(dropSpace, hexInput))
		if err != nil {
			return nil, fmt.Errorf("parse hex: %w", err)
		}
		return data, nil
	}
	if inFile == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(inFile)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

func dropSpace(r rune) rune {
	if r == ' ' || r == '\t' || r == '\n' {
		return -1
	}
	return r
}

func encodeJSON(jsonFile, outFile string, cfg *qpack.Config) error {
	src, err := os.ReadFile(jsonFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	v, err := qpack.FromJSON(src)
	if err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}
	data, err := qpack.Encode(v, cfg)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if outFile != "" {
		return os.WriteFile(outFile, data, 0o644)
	}
	_, err = os.Stdout.Write(data)
	return err
}

func dump(data []byte, cfg *qpack.Config, showTags, toJSON bool) error {
	v, err := qpack.Decode(data, cfg)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	if toJSON {
		out, err := qpack.ToJSON(v)
		if err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Input: %d bytes\n\n", len(data))
	printTree(os.Stdout, v, "")

	if showTags {
		infos, err := codec.ScanTags(data)
		if err != nil {
			return fmt.Errorf("scan tags: %w", err)
		}
		fmt.Printf("\nTokens:\n")
		for _, info := range infos {
			if info.Summary != "" {
				fmt.Printf("  %6d  0x%02x  %-12s %s\n", info.Offset, info.Tag, info.Name, info.Summary)
			} else {
				fmt.Printf("  %6d  0x%02x  %s\n", info.Offset, info.Tag, info.Name)
			}
		}
	}
	return nil
}

func printTree(w io.Writer, v qpack.Value, indent string) {
	switch val := v.(type) {
	case qpack.List:
		fmt.Fprintf(w, "%sarray (%d)\n", indent, len(val))
		for i, elem := range val {
			fmt.Fprintf(w, "%s  [%d]\n", indent, i)
			printTree(w, elem, indent+"    ")
		}
	case *qpack.Map:
		fmt.Fprintf(w, "%smap (%d)\n", indent, len(val.Pairs))
		for _, pair := range val.Pairs {
			fmt.Fprintf(w, "%s  %s\n", indent, renderScalar(pair.Key))
			printTree(w, pair.Value, indent+"    ")
		}
	default:
		fmt.Fprintf(w, "%s%s\n", indent, renderScalar(v))
	}
}

func renderScalar(v qpack.Value) string {
	switch val := v.(type) {
	case qpack.Bool:
		return fmt.Sprintf("bool %v", bool(val))
	case qpack.Int:
		return fmt.Sprintf("int %d", int64(val))
	case qpack.Double:
		return fmt.Sprintf("double %g", float64(val))
	case qpack.Str:
		return fmt.Sprintf("string %q", string(val))
	case qpack.List:
		return fmt.Sprintf("array (%d)", len(val))
	case *qpack.Map:
		return fmt.Sprintf("map (%d)", len(val.Pairs))
	default:
		return "null"
	}
}
