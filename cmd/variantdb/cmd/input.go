package cmd

import (
	"encoding/base64"
	"encoding/hex"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Encodings accepted by --encoding.
const (
	encodingHex    = "hex"
	encodingBase64 = "base64"
)

// addPairFlags registers the flags readPair understands.
func addPairFlags(cmd *cobra.Command) {
	cmd.Flags().String("value", "", "Encoded value buffer (instead of a value file)")
	cmd.Flags().String("metadata", "", "Encoded metadata buffer (instead of a metadata file)")
	cmd.Flags().String("encoding", encodingHex, "Encoding of --value and --metadata: hex or base64")
}

// readPair returns the value and metadata buffers named by args
// ([value-file [metadata-file]]) or by the --value/--metadata flags.
// Missing metadata is nil; it is only needed when the value holds objects.
func readPair(cmd *cobra.Command, args []string) (value, metadata []byte, err error) {
	valueFlag, _ := cmd.Flags().GetString("value")
	metadataFlag, _ := cmd.Flags().GetString("metadata")
	encoding, _ := cmd.Flags().GetString("encoding")

	if len(args) > 0 && (valueFlag != "" || metadataFlag != "") {
		return nil, nil, errors.New("pass buffers either as files or as flags, not both")
	}

	if len(args) > 0 {
		if value, err = os.ReadFile(args[0]); err != nil {
			return nil, nil, errors.Wrap(err, "read value file")
		}
		if len(args) > 1 {
			if metadata, err = os.ReadFile(args[1]); err != nil {
				return nil, nil, errors.Wrap(err, "read metadata file")
			}
		}
		return value, metadata, nil
	}

	if valueFlag == "" {
		return nil, nil, errors.New("a value file or --value is required")
	}
	if value, err = decodeBuffer(valueFlag, encoding); err != nil {
		return nil, nil, errors.Wrap(err, "--value")
	}
	if metadataFlag != "" {
		if metadata, err = decodeBuffer(metadataFlag, encoding); err != nil {
			return nil, nil, errors.Wrap(err, "--metadata")
		}
	}
	return value, metadata, nil
}

func decodeBuffer(s, encoding string) ([]byte, error) {
	switch encoding {
	case encodingHex:
		s = strings.NewReplacer(" ", "", "\n", "", "0x", "").Replace(s)
		return hex.DecodeString(s)
	case encodingBase64:
		return base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	}
	return nil, errors.Errorf("unknown encoding %q", encoding)
}
