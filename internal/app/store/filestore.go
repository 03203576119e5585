package store

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// FileStore - MemoryStore, сохраняемый в файл JSON lines. Первая строка
// хранит счётчик ключей, остальные - по одной записи. Файл целиком
// перезаписывается после каждого изменения.
type FileStore[K Key] struct {
	*MemoryStore[K]

	filePath string
	logger   *zap.SugaredLogger

	// writeMu упорядочивает пары изменение-перезапись, чтобы файл не отставал
	// от предыдущего изменения.
	writeMu  sync.Mutex
	initOnce sync.Once
	initErr  error
}

type fileHeader struct {
	Seq int64 `json:"seq"`
}

type fileEntry[K Key] struct {
	Key    K              `json:"key"`
	Record map[string]any `json:"record"`
}

func NewFileStore[K Key](filePath string, schema Schema, logger *zap.SugaredLogger) *FileStore[K] {
	return &FileStore[K]{
		MemoryStore: NewMemoryStore[K](schema),
		filePath:    filePath,
		logger:      logger,
	}
}

// Init один раз загружает файл. Отсутствующий файл - пустое хранилище.
func (fs *FileStore[K]) Init(context.Context) error {
	fs.initOnce.Do(func() {
		fs.initErr = fs.loadFromFile()
	})
	return fs.initErr
}

func (fs *FileStore[K]) loadFromFile() error {
	file, err := os.Open(fs.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			fs.logger.Debugw("Storage file not found, starting empty", "path", fs.filePath)
			return nil
		}
		return classify("open storage file", err)
	}
	defer file.Close()

	dec := json.NewDecoder(bufio.NewReader(file))
	dec.UseNumber()

	if dec.More() {
		var h fileHeader
		if err := dec.Decode(&h); err != nil {
			return classify("decode storage header", err)
		}
		fs.restoreSeq(h.Seq)
	}

	var entries []Entry[K]
	for dec.More() {
		var fe fileEntry[K]
		if err := dec.Decode(&fe); err != nil {
			return classify("decode storage entry", err)
		}
		rec, err := fs.fromJSON(fe.Record)
		if err != nil {
			return err
		}
		entries = append(entries, Entry[K]{Key: fe.Key, Record: rec})
	}
	// More останавливается и на ошибке чтения, и на лишнем разделителе.
	if tok, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = fmt.Errorf("unexpected %v at end of storage file", tok)
		}
		return classify("read storage file", err)
	}

	fs.restore(entries)
	fs.logger.Infow("Storage file loaded", "path", fs.filePath, "records", len(entries))
	return nil
}

// fromJSON приводит декодированные JSON-значения к типам колонок схемы.
func (fs *FileStore[K]) fromJSON(raw map[string]any) (Record, error) {
	rec := make(Record, len(raw))
	for name, v := range raw {
		c, ok := fs.schema.column(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown column %s in storage file", ErrInvalidRecord, name)
		}
		if num, isNum := v.(json.Number); isNum && c.Kind == KindInt {
			n, err := num.Int64()
			if err != nil {
				return nil, fmt.Errorf("%w: column %s: %v", ErrInvalidRecord, name, err)
			}
			v = n
		}
		rec[name] = v
	}
	return fs.schema.Normalize(rec)
}

func (fs *FileStore[K]) rewriteFile() error {
	entries, seq := fs.snapshot()

	if dir := filepath.Dir(fs.filePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp := fs.filePath + ".tmp"
	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(file)
	enc := json.NewEncoder(writer)
	err = enc.Encode(fileHeader{Seq: seq})
	for _, e := range entries {
		if err != nil {
			break
		}
		err = enc.Encode(fileEntry[K]{Key: e.Key, Record: e.Record})
	}
	if err == nil {
		err = writer.Flush()
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return errors.Join(err, os.Remove(tmp))
	}
	return os.Rename(tmp, fs.filePath)
}

func (fs *FileStore[K]) persist(op string) error {
	if err := fs.rewriteFile(); err != nil {
		fs.logger.Errorw("Failed to rewrite storage file", "path", fs.filePath, "op", op, "error", err)
		return classify(op, err)
	}
	return nil
}

// Изменения ниже откатываются в памяти, если файл не удалось перезаписать:
// в памяти нет состояния, которого нет в файле.

func (fs *FileStore[K]) InsertIfAbsent(ctx context.Context, key K, rec Record) (Record, bool, error) {
	fs.writeMu.Lock()
	defer fs.writeMu.Unlock()

	stored, created, err := fs.MemoryStore.InsertIfAbsent(ctx, key, rec)
	if err != nil || !created {
		return stored, created, err
	}
	if err := fs.persist("insert"); err != nil {
		fs.remove(key)
		return nil, false, err
	}
	return stored, true, nil
}

func (fs *FileStore[K]) InsertAuto(ctx context.Context, rec Record) (K, error) {
	fs.writeMu.Lock()
	defer fs.writeMu.Unlock()

	key, err := fs.MemoryStore.InsertAuto(ctx, rec)
	if err != nil {
		return key, err
	}
	if err := fs.persist("insert"); err != nil {
		// выделенный ключ повторно не используется
		fs.remove(key)
		var zero K
		return zero, err
	}
	return key, nil
}

func (fs *FileStore[K]) Update(ctx context.Context, key K, patch Record) (Record, error) {
	fs.writeMu.Lock()
	defer fs.writeMu.Unlock()

	if err := fs.schema.CheckPatch(patch); err != nil {
		return nil, err
	}
	prev, err := fs.MemoryStore.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	rec, err := fs.MemoryStore.Update(ctx, key, patch)
	if err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		return rec, nil
	}
	if err := fs.persist("update"); err != nil {
		fs.put(key, prev)
		return nil, err
	}
	return rec, nil
}

func (fs *FileStore[K]) Delete(ctx context.Context, key K) error {
	fs.writeMu.Lock()
	defer fs.writeMu.Unlock()

	prev, err := fs.MemoryStore.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := fs.MemoryStore.Delete(ctx, key); err != nil {
		return err
	}
	if err := fs.persist("delete"); err != nil {
		fs.put(key, prev)
		return err
	}
	return nil
}
