package remote

import (
	"errors"
	"testing"

	"github.com/creativeprojects/mailpurge/lib"
	"github.com/emersion/go-imap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storeCall struct {
	seqset string
	item   imap.StoreItem
	value  interface{}
}

type fakeClient struct {
	stores      []storeCall
	moves       []string
	copies      []string
	expunged    int
	uidExpunged []string
	err         error
}

func (f *fakeClient) UidStore(seqset *imap.SeqSet, item imap.StoreItem, value interface{}, ch chan *imap.Message) error {
	if ch != nil {
		close(ch)
	}
	if f.err != nil {
		return f.err
	}
	f.stores = append(f.stores, storeCall{seqset: seqset.String(), item: item, value: value})
	return nil
}

func (f *fakeClient) UidMove(seqset *imap.SeqSet, dest string) error {
	if f.err != nil {
		return f.err
	}
	f.moves = append(f.moves, seqset.String()+" "+dest)
	return nil
}

func (f *fakeClient) UidCopy(seqset *imap.SeqSet, dest string) error {
	if f.err != nil {
		return f.err
	}
	f.copies = append(f.copies, seqset.String()+" "+dest)
	return nil
}

func (f *fakeClient) Expunge(ch chan uint32) error {
	if ch != nil {
		close(ch)
	}
	if f.err != nil {
		return f.err
	}
	f.expunged++
	return nil
}

func (f *fakeClient) UidExpunge(seqSet *imap.SeqSet, ch chan uint32) error {
	defer close(ch)
	if f.err != nil {
		return f.err
	}
	f.uidExpunged = append(f.uidExpunged, seqSet.String())
	for _, set := range seqSet.Set {
		for uid := set.Start; uid <= set.Stop; uid++ {
			ch <- uid
		}
	}
	return nil
}

func TestGmailTrasher(t *testing.T) {
	client := &fakeClient{}
	trasher := &gmailTrasher{client: client}

	require.NoError(t, trasher.trash(12, "ignored"))
	require.NoError(t, trasher.flush([]uint32{12}))

	require.Len(t, client.stores, 1)
	assert.Equal(t, "12", client.stores[0].seqset)
	assert.Equal(t, lib.GmailAddLabels, client.stores[0].item)
	assert.Equal(t, []interface{}{imap.RawString(lib.GmailTrashLabel)}, client.stores[0].value)
	assert.Empty(t, client.moves)
	assert.Empty(t, client.copies)
}

func TestMoveTrasher(t *testing.T) {
	client := &fakeClient{}
	trasher := &moveTrasher{client: client}

	require.NoError(t, trasher.trash(3, "[Gmail]/Trash"))
	require.NoError(t, trasher.flush([]uint32{3}))

	assert.Equal(t, []string{"3 [Gmail]/Trash"}, client.moves)
	assert.Empty(t, client.stores)
}

func TestCopyTrasher(t *testing.T) {
	client := &fakeClient{}
	trasher := &copyTrasher{client: client, expunger: &plainExpunger{client: client}}

	require.NoError(t, trasher.trash(5, "Trash"))
	require.NoError(t, trasher.trash(6, "Trash"))
	assert.Equal(t, []string{"5 Trash", "6 Trash"}, client.copies)
	require.Len(t, client.stores, 2)
	assert.Equal(t, imap.FormatFlagsOp(imap.AddFlags, true), client.stores[0].item)
	assert.Equal(t, []interface{}{imap.DeletedFlag}, client.stores[0].value)
	assert.Equal(t, 0, client.expunged)

	require.NoError(t, trasher.flush([]uint32{5, 6}))
	assert.Equal(t, 1, client.expunged)
}

func TestCopyTrasherFlushNothing(t *testing.T) {
	client := &fakeClient{}
	trasher := &copyTrasher{client: client, expunger: &plainExpunger{client: client}}

	require.NoError(t, trasher.flush(nil))
	assert.Equal(t, 0, client.expunged)
}

func TestTrasherErrors(t *testing.T) {
	failure := errors.New("NO server error")
	client := &fakeClient{err: failure}

	trashers := []trasher{
		&gmailTrasher{client: client},
		&moveTrasher{client: client},
		&copyTrasher{client: client, expunger: &plainExpunger{client: client}},
	}
	for _, trasher := range trashers {
		t.Run(trasher.String(), func(t *testing.T) {
			assert.ErrorIs(t, trasher.trash(1, "Trash"), failure)
		})
	}
}
