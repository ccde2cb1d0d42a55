package session

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/oomph-ac/survivalfly/event"
	"github.com/oomph-ac/survivalfly/oerror"
)

const CurrentRecordingVer = event.EventsVersion

// Recording is a decoded stream of events of one or more entities.
type Recording struct {
	Version string
	Events  []event.Event
}

// Recorder writes events to a recording.
type Recorder struct {
	w      *bufio.Writer
	closer io.Closer
}

// NewRecorder starts a recording on the writer passed, writing the recording header.
func NewRecorder(w io.Writer) (*Recorder, error) {
	r := &Recorder{w: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		r.closer = c
	}
	// Encode the recording version into the header of the recording. This is to ensure that replays will
	// be able to decode the recording.
	if _, err := r.w.WriteString(CurrentRecordingVer + "\n"); err != nil {
		return nil, oerror.New("unable to write recording header: %v", err)
	}
	return r, nil
}

// CreateRecording creates the recording file at path, replacing an existing one.
func CreateRecording(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, oerror.New("unable to open recording file: %v", err)
	}
	return NewRecorder(f)
}

// Record writes an event to the recording.
func (r *Recorder) Record(ev event.Event) error {
	enc, err := event.Encode(ev)
	if err != nil {
		return err
	}
	r.w.Write(enc)
	return r.w.WriteByte('\n')
}

// Close flushes the recording and closes the underlying writer if it is an io.Closer.
func (r *Recorder) Close() error {
	if err := r.w.Flush(); err != nil {
		return oerror.New("unable to flush recording: %v", err)
	}
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// DecodeRecording decodes a recording. It returns an error if the recording could not be parsed, or if
// the version of the recording is not supported.
func DecodeRecording(r io.Reader) (*Recording, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, oerror.New("unable to read recording: %v", err)
		}
		return nil, oerror.New("empty recording")
	}

	rec := &Recording{Version: strings.TrimSpace(sc.Text())}
	if rec.Version != CurrentRecordingVer {
		return nil, oerror.New("unsupported recording version: %s", rec.Version)
	}

	for line := 2; sc.Scan(); line++ {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		ev, err := event.Decode(sc.Bytes())
		if err != nil {
			return nil, oerror.New("line %d: %v", line, err)
		}
		rec.Events = append(rec.Events, ev)
	}
	if err := sc.Err(); err != nil {
		return nil, oerror.New("unable to read recording: %v", err)
	}
	return rec, nil
}

// DecodeRecordingFile decodes the recording file at path.
func DecodeRecordingFile(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, oerror.New("unable to open recording file: %v", err)
	}
	defer f.Close()
	return DecodeRecording(f)
}
