// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package nmcli

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResponse struct {
	stdout string
	stderr string
	err    error
}

// fakeRunner records invocations and replays canned responses keyed by the
// space-joined argument list.
type fakeRunner struct {
	calls     [][]string
	responses map[string]fakeResponse
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	r := f.responses[strings.Join(args, " ")]
	return []byte(r.stdout), []byte(r.stderr), r.err
}

func (f *fakeRunner) commandLines() []string {
	var lines []string
	for _, c := range f.calls {
		lines = append(lines, strings.Join(c, " "))
	}
	return lines
}

func newTestClient(iface string, responses map[string]fakeResponse) (*Client, *fakeRunner) {
	fr := &fakeRunner{responses: responses}
	return &Client{Tool: "nmcli", Runner: fr, Interface: iface}, fr
}

func TestNetworks_ListsAndMarksSaved(t *testing.T) {
	c, fr := newTestClient("wlan0", map[string]fakeResponse{
		"-t -f IN-USE,SSID,BSSID,SECURITY,SIGNAL,CHAN device wifi list ifname wlan0": {stdout: sampleWifiList},
		"-t -f NAME,TYPE connection show":                                           {stdout: "Cafe Guest:802-11-wireless\n"},
	})

	networks, err := c.Networks(context.Background())
	require.NoError(t, err)
	require.Len(t, networks, 5)
	assert.True(t, networks[2].Saved)
	assert.False(t, networks[0].Saved)
	assert.Equal(t, []string{
		"nmcli -t -f IN-USE,SSID,BSSID,SECURITY,SIGNAL,CHAN device wifi list ifname wlan0",
		"nmcli -t -f NAME,TYPE connection show",
	}, fr.commandLines())
}

func TestNetworks_ProfileFailureIsNotFatal(t *testing.T) {
	c, _ := newTestClient("", map[string]fakeResponse{
		"-t -f IN-USE,SSID,BSSID,SECURITY,SIGNAL,CHAN device wifi list": {stdout: sampleWifiList},
		"-t -f NAME,TYPE connection show":                              {stderr: "boom", err: errors.New("exit status 1")},
	})
	networks, err := c.Networks(context.Background())
	require.NoError(t, err)
	assert.Len(t, networks, 5)
}

func TestNetworks_SurfacesToolError(t *testing.T) {
	c, _ := newTestClient("", map[string]fakeResponse{
		"-t -f IN-USE,SSID,BSSID,SECURITY,SIGNAL,CHAN device wifi list": {
			stdout: "ignored",
			stderr: "Error: NetworkManager is not running.",
			err:    errors.New("exit status 8"),
		},
	})
	_, err := c.Networks(context.Background())
	require.Error(t, err)

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "Error: NetworkManager is not running.", cmdErr.Output)
	assert.Contains(t, err.Error(), "NetworkManager is not running")
}

func TestRun_FallsBackToStdoutText(t *testing.T) {
	c, _ := newTestClient("", map[string]fakeResponse{
		"device wifi rescan": {stdout: "Error: Scanning not allowed immediately following previous scan.", err: errors.New("exit status 1")},
	})
	err := c.Rescan(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Scanning not allowed")
}

func TestRun_ToolNotFound(t *testing.T) {
	c, _ := newTestClient("", map[string]fakeResponse{
		"device wifi rescan": {err: &exec.Error{Name: "nmcli", Err: exec.ErrNotFound}},
	})
	err := c.Rescan(context.Background())
	assert.ErrorIs(t, err, ErrToolNotFound)
}

func TestRescan_WithInterface(t *testing.T) {
	c, fr := newTestClient("wlp2s0", nil)
	require.NoError(t, c.Rescan(context.Background()))
	assert.Equal(t, []string{"nmcli device wifi rescan ifname wlp2s0"}, fr.commandLines())
}

func TestConnect_SecuredWithPassword(t *testing.T) {
	c, fr := newTestClient("wlan0", nil)
	n := Network{SSID: "Home", BSSID: "AA:BB:CC:00:00:02", Security: "WPA2"}

	_, err := c.Connect(context.Background(), n, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"nmcli connection delete id Home",
		"nmcli device wifi connect AA:BB:CC:00:00:02 password s3cret ifname wlan0 name Home",
	}, fr.commandLines())
}

func TestConnect_WithoutPasswordKeepsProfile(t *testing.T) {
	c, fr := newTestClient("", nil)
	n := Network{SSID: "Home", BSSID: "AA:BB", Security: "WPA2"}

	_, err := c.Connect(context.Background(), n, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"nmcli device wifi connect AA:BB name Home"}, fr.commandLines())
}

func TestConnect_OpenNetworkNeverSendsPassword(t *testing.T) {
	c, fr := newTestClient("", nil)
	n := Network{SSID: "Cafe Guest"}

	_, err := c.Connect(context.Background(), n, "ignored")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"nmcli", "device", "wifi", "connect", "Cafe Guest"}}, fr.calls)
}

func TestConnect_ErrorIsRedacted(t *testing.T) {
	args := "device wifi connect AA:BB password hunter2 name Home"
	c, _ := newTestClient("", map[string]fakeResponse{
		args: {stderr: "Error: bad key hunter2", err: errors.New("exit status 4")},
	})
	_, err := c.Connect(context.Background(), Network{SSID: "Home", BSSID: "AA:BB", Security: "WPA2"}, "hunter2")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "hunter2")

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.NotContains(t, cmdErr.CommandLine(), "hunter2")
	assert.Contains(t, cmdErr.CommandLine(), "password ********")
}

func TestConnect_RequiresIdentity(t *testing.T) {
	c, fr := newTestClient("", nil)
	_, err := c.Connect(context.Background(), Network{}, "")
	assert.Error(t, err)
	assert.Empty(t, fr.calls)
}

func TestActivate(t *testing.T) {
	c, fr := newTestClient("wlan0", nil)
	_, err := c.Activate(context.Background(), "Home")
	require.NoError(t, err)
	assert.Equal(t, []string{"nmcli connection up id Home ifname wlan0"}, fr.commandLines())
}

func TestDisconnect_BoundInterface(t *testing.T) {
	c, fr := newTestClient("wlan1", nil)
	_, err := c.Disconnect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"nmcli device disconnect wlan1"}, fr.commandLines())
}

func TestDisconnect_FindsActiveDevice(t *testing.T) {
	c, fr := newTestClient("", map[string]fakeResponse{
		"-t -f DEVICE,TYPE,STATE,CONNECTION device status": {stdout: "eth0:ethernet:connected:Wired\nwlan0:wifi:disconnected:--\nwlp3s0:wifi:connected:Home\n"},
	})
	_, err := c.Disconnect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "nmcli device disconnect wlp3s0", fr.commandLines()[1])
}

func TestDisconnect_NoActiveDevice(t *testing.T) {
	c, _ := newTestClient("", map[string]fakeResponse{
		"-t -f DEVICE,TYPE,STATE,CONNECTION device status": {stdout: "wlan0:wifi:disconnected:--\n"},
	})
	_, err := c.Disconnect(context.Background())
	assert.ErrorIs(t, err, ErrNoWifiDevice)
}

func TestForget(t *testing.T) {
	c, fr := newTestClient("wlan0", nil)
	_, err := c.Forget(context.Background(), "Office:5G")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"nmcli", "connection", "delete", "id", "Office:5G"}}, fr.calls)
}

func TestWithInterface_DoesNotMutate(t *testing.T) {
	c, _ := newTestClient("wlan0", nil)
	other := c.WithInterface("wlan1")
	assert.Equal(t, "wlan0", c.Interface)
	assert.Equal(t, "wlan1", other.Interface)
	assert.Same(t, c.Runner, other.Runner)
}

func TestCommandError_Message(t *testing.T) {
	e := &CommandError{Command: "nmcli", ExitCode: 10, Err: fmt.Errorf("exit status 10")}
	assert.Equal(t, "nmcli exited with status 10", e.Error())
	e.ExitCode = -1
	assert.Equal(t, "nmcli failed: exit status 10", e.Error())
}
