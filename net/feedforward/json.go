package feedforward

import "bufio"
import "compress/lzw"
import "encoding/json"
import "fmt"
import "io"
import "os"

import "github.com/neurlang/castanet/hashtron"

// WriteCompressedWeightsToFile writes model weights to a lzw file
func (f FeedforwardNetwork) WriteCompressedWeightsToFile(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	err = f.WriteCompressedWeights(file)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}

// WriteCompressedWeights writes model weights to a writer as a lzw compressed json array
func (f FeedforwardNetwork) WriteCompressedWeights(w io.Writer) error {
	lw := lzw.NewWriter(w, lzw.LSB, 8)

	_, err := lw.Write([]byte("[\n"))
	if err != nil {
		return err
	}
	for i := 0; i < f.Len(); i++ {
		if i != 0 {
			_, err = lw.Write([]byte(",\n"))
			if err != nil {
				return err
			}
		}
		err := f.GetHashtron(i).WriteJson(lw)
		if err != nil {
			return err
		}
	}
	_, err = lw.Write([]byte("]\n"))
	if err != nil {
		return err
	}
	return lw.Close()
}

// ReadCompressedWeightsFromFile reads model weights from a lzw file
func (f FeedforwardNetwork) ReadCompressedWeightsFromFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()
	return f.ReadCompressedWeights(bufio.NewReader(file))
}

// ReadCompressedWeights reads model weights from a reader, the network shape must match
func (f FeedforwardNetwork) ReadCompressedWeights(r io.Reader) error {
	lr := lzw.NewReader(r, lzw.LSB, 8)
	defer lr.Close()

	var trons []hashtron.Hashtron
	if err := json.NewDecoder(lr).Decode(&trons); err != nil {
		return err
	}
	if len(trons) != f.Len() {
		return fmt.Errorf("feedforward: weights hold %d hashtrons, network has %d", len(trons), f.Len())
	}
	for i := range trons {
		if trons[i].Bits() != f.GetBits() {
			return fmt.Errorf("feedforward: hashtron %d predicts %d bits, network %d", i, trons[i].Bits(), f.GetBits())
		}
		*f.GetHashtron(i) = trons[i]
	}
	return nil
}
