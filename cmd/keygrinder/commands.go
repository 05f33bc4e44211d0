package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/keygrinder/keygrinder/internal/wordlist"
	"github.com/keygrinder/keygrinder/pkg/crypto"
	"github.com/keygrinder/keygrinder/pkg/engine"
	"github.com/keygrinder/keygrinder/pkg/vault"
)

// target pairs a parsed vault record with its crack state.
type target struct {
	rec    *vault.Record
	batch  *engine.Batch
	solved bool
}

// cmdCrack streams the wordlist in chunks and dispatches each chunk as one
// batch per unsolved vault record. Engine matches are only reported after
// exact re-verification against the full record.
func cmdCrack(args []string) error {
	if flags.vault == "" {
		return fmt.Errorf("vault file is required (-f)")
	}

	f, err := os.Open(flags.vault)
	if err != nil {
		return err
	}
	records, err := vault.Read(f)
	f.Close()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no Salted__ records in %s", flags.vault)
	}

	targets := make([]*target, len(records))
	for i, rec := range records {
		block := rec.FirstBlock()
		b, err := engine.NewBatch(rec.Salt[:], block[:])
		if err != nil {
			return err
		}
		targets[i] = &target{rec: rec, batch: b}
	}

	in, err := openWordlist()
	if err != nil {
		return err
	}
	defer in.Close()

	log.WithFields(log.Fields{
		"records":  len(records),
		"threads":  flags.threads,
		"batch":    flags.batchSize,
		"wordlist": flags.wordlist,
	}).Info("cracking")

	var (
		scanner  = wordlist.New(in)
		chunk    = make([][]byte, 0, flags.batchSize)
		tried    int
		found    int
		start    = time.Now()
		lastStat = start
	)

	for {
		chunk = chunk[:0]
		for len(chunk) < flags.batchSize {
			word, ok := scanner.Next()
			if !ok {
				break
			}
			chunk = append(chunk, append([]byte(nil), word...))
		}
		if len(chunk) == 0 {
			break
		}
		tried += len(chunk)

		solvedAll := true
		for _, t := range targets {
			if t.solved {
				continue
			}
			if err := runChunk(t, chunk); err != nil {
				return err
			}
			if t.solved {
				found++
			} else {
				solvedAll = false
			}
		}
		if solvedAll {
			break
		}

		if flags.stats > 0 && time.Since(lastStat) >= time.Duration(flags.stats)*time.Second {
			lastStat = time.Now()
			elapsed := time.Since(start).Seconds()
			log.WithFields(log.Fields{
				"tried":   tried,
				"rate":    fmt.Sprintf("%.0f/s", float64(tried)/elapsed),
				"found":   found,
				"skipped": scanner.Skipped(),
			}).Info("progress")
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"tried":   tried,
		"found":   found,
		"skipped": scanner.Skipped(),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Info("done")

	if found == 0 {
		return fmt.Errorf("exhausted wordlist without a verified password")
	}
	return nil
}

// runChunk dispatches one candidate chunk against one record and exactly
// verifies any heuristic matches.
func runChunk(t *target, chunk [][]byte) error {
	t.batch.Reset()
	for _, word := range chunk {
		if err := t.batch.Add(word); err != nil {
			return err
		}
	}

	recs := t.batch.Run(flags.threads)
	for _, id := range engine.Matches(recs) {
		password := t.batch.Password(id)
		plain, ok := t.rec.Verify(password)
		if !ok {
			log.WithField("password", string(password)).Debug("heuristic false positive")
			continue
		}

		t.solved = true
		fmt.Printf("Password: '%s'\nData: `%s`\n", password, plain)
		if flags.outfile != "" {
			if err := appendLine(flags.outfile, string(password)); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

// cmdDerive prints the key material the pipeline derives for one
// password+salt pair.
func cmdDerive(args []string) error {
	salt, err := saltFromFlags()
	if err != nil {
		return err
	}

	dk, err := crypto.DeriveKeyIV([]byte(flags.password), salt)
	if err != nil {
		return err
	}
	key := dk.CipherKey()

	fmt.Printf("key1: %x\n", dk.Key1)
	fmt.Printf("key2: %x\n", dk.Key2)
	fmt.Printf("iv:   %x\n", dk.IV)
	fmt.Printf("key:  %x\n", key)
	return nil
}

// cmdDecrypt runs a single lane and prints its full output record.
func cmdDecrypt(args []string) error {
	salt, err := saltFromFlags()
	if err != nil {
		return err
	}
	if flags.ciphertext == "" {
		return fmt.Errorf("ciphertext is required (-c)")
	}
	ct, err := hex.DecodeString(flags.ciphertext)
	if err != nil {
		return fmt.Errorf("invalid ciphertext hex: %w", err)
	}

	b, err := engine.NewBatch(salt, ct)
	if err != nil {
		return err
	}
	if err := b.Add([]byte(flags.password)); err != nil {
		return err
	}

	rec := b.Run(1)[0]
	block := rec.Block()
	key1 := rec.Key1()
	key2 := rec.Key2()
	iv := rec.IV()

	fmt.Printf("match: %v\n", rec.Match())
	fmt.Printf("block: %x\n", block)
	fmt.Printf("key1:  %x\n", key1)
	fmt.Printf("key2:  %x\n", key2)
	fmt.Printf("iv:    %x\n", iv)
	return nil
}

// cmdVerify exactly re-verifies one password against a vault record,
// bypassing the heuristic entirely.
func cmdVerify(args []string) error {
	if flags.vault == "" {
		return fmt.Errorf("vault file is required (-f)")
	}
	if flags.password == "" {
		return fmt.Errorf("password is required (-p)")
	}

	f, err := os.Open(flags.vault)
	if err != nil {
		return err
	}
	records, err := vault.Read(f)
	f.Close()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no Salted__ records in %s", flags.vault)
	}

	for i, rec := range records {
		plain, ok := rec.Verify([]byte(flags.password))
		if !ok {
			fmt.Printf("[%d] no\n", i)
			continue
		}
		fmt.Printf("[%d] yes\nData: `%s`\n", i, plain)
	}
	return nil
}

// openWordlist opens the -w file, or stdin when the flag is empty.
func openWordlist() (io.ReadCloser, error) {
	if flags.wordlist == "" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(flags.wordlist)
}

// saltFromFlags decodes the -a hex salt.
func saltFromFlags() ([]byte, error) {
	if flags.salt == "" {
		return nil, fmt.Errorf("salt is required (-a)")
	}
	salt, err := hex.DecodeString(flags.salt)
	if err != nil {
		return nil, fmt.Errorf("invalid salt hex: %w", err)
	}
	return salt, nil
}

func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintln(f, line)
	return err
}
