package firestore

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ctxTxKey struct{}

func txFrom(ctx context.Context) *firestore.Transaction {
	tx, _ := ctx.Value(ctxTxKey{}).(*firestore.Transaction)
	return tx
}

// RunInTransaction runs fn in a Firestore transaction. Firestore retries
// fn on contention, so fn must not have side effects outside the
// repository.
func (f *Firestore) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFrom(ctx) != nil {
		return fn(ctx)
	}

	err := f.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		return fn(context.WithValue(ctx, ctxTxKey{}, tx))
	})
	if err != nil {
		return goerr.Wrap(err, "transaction failed")
	}
	return nil
}

func (f *Firestore) get(ctx context.Context, ref *firestore.DocumentRef) (*firestore.DocumentSnapshot, error) {
	if tx := txFrom(ctx); tx != nil {
		return tx.Get(ref)
	}
	return ref.Get(ctx)
}

func (f *Firestore) set(ctx context.Context, ref *firestore.DocumentRef, data any) error {
	if tx := txFrom(ctx); tx != nil {
		return tx.Set(ref, data)
	}
	_, err := ref.Set(ctx, data)
	return err
}

func (f *Firestore) delete(ctx context.Context, ref *firestore.DocumentRef) error {
	if tx := txFrom(ctx); tx != nil {
		return tx.Delete(ref, firestore.Exists)
	}
	_, err := ref.Delete(ctx, firestore.Exists)
	return err
}

func (f *Firestore) documents(ctx context.Context, q firestore.Query) *firestore.DocumentIterator {
	if tx := txFrom(ctx); tx != nil {
		return tx.Documents(q)
	}
	return q.Documents(ctx)
}

func getDoc[T any](ctx context.Context, f *Firestore, ref *firestore.DocumentRef, what string) (*T, error) {
	doc, err := f.get(ctx, ref)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, what+" not found", goerr.V("id", ref.ID))
		}
		return nil, goerr.Wrap(err, "failed to get "+what, goerr.V("id", ref.ID))
	}

	var v T
	if err := doc.DataTo(&v); err != nil {
		return nil, goerr.Wrap(err, "failed to decode "+what, goerr.V("id", ref.ID))
	}
	return &v, nil
}

func setDoc(ctx context.Context, f *Firestore, ref *firestore.DocumentRef, data any, what string) error {
	if err := f.set(ctx, ref, data); err != nil {
		return goerr.Wrap(err, "failed to save "+what, goerr.V("id", ref.ID))
	}
	return nil
}

func deleteDoc(ctx context.Context, f *Firestore, ref *firestore.DocumentRef, what string) error {
	if err := f.delete(ctx, ref); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, what+" not found", goerr.V("id", ref.ID))
		}
		return goerr.Wrap(err, "failed to delete "+what, goerr.V("id", ref.ID))
	}
	return nil
}

func listDocs[T any](ctx context.Context, f *Firestore, q firestore.Query, what string) ([]*T, error) {
	iter := f.documents(ctx, q)
	defer iter.Stop()

	var out []*T
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate "+what)
		}

		var v T
		if err := doc.DataTo(&v); err != nil {
			return nil, goerr.Wrap(err, "failed to decode "+what, goerr.V("id", doc.Ref.ID))
		}
		out = append(out, &v)
	}
	return out, nil
}
