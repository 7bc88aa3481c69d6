package window

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/PixPMusic/gopher-surface/internal/config"
	"github.com/PixPMusic/gopher-surface/internal/midi"
)

// ============ DEVICES TAB ============

var deviceTypeNames = []string{"Classic", "Colorful", "Generic"}

func deviceTypeName(t midi.DeviceType) string {
	switch t {
	case midi.DeviceTypeClassic:
		return "Classic"
	case midi.DeviceTypeGeneric:
		return "Generic"
	default:
		return "Colorful"
	}
}

func deviceTypeFromName(name string) midi.DeviceType {
	switch name {
	case "Classic":
		return midi.DeviceTypeClassic
	case "Generic":
		return midi.DeviceTypeGeneric
	default:
		return midi.DeviceTypeColorful
	}
}

func (mw *MainWindow) createDevicesTab() fyne.CanvasObject {
	devicesHeader := widget.NewLabel("MIDI Devices")
	devicesHeader.TextStyle = fyne.TextStyle{Bold: true}

	addBtn := widget.NewButtonWithIcon("Add Device", theme.ContentAddIcon(), func() {
		mw.addDevice()
	})

	devicesToolbar := container.NewBorder(nil, nil, devicesHeader, addBtn)

	headers := []fyne.CanvasObject{}
	for _, title := range []string{"Name", "Input Port", "Output Port", "Type", "Controls", ""} {
		l := widget.NewLabel(title)
		l.TextStyle = fyne.TextStyle{Bold: true}
		headers = append(headers, l)
	}
	columnHeaders := container.NewGridWithColumns(6, headers...)

	mw.deviceList = widget.NewList(
		func() int { return len(mw.cfg.Devices) },
		func() fyne.CanvasObject { return mw.createDeviceRow() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { mw.updateDeviceRow(id, obj) },
	)

	saveBtn := widget.NewButtonWithIcon("Save & Activate Devices", theme.DocumentSaveIcon(), func() {
		mw.saveAndActivate()
	})
	saveBtn.Importance = widget.HighImportance

	actionsSection := container.NewVBox(
		widget.NewSeparator(),
		container.NewHBox(saveBtn),
	)

	return container.NewBorder(
		container.NewVBox(devicesToolbar, widget.NewSeparator(), columnHeaders),
		actionsSection,
		nil, nil,
		mw.deviceList,
	)
}

func (mw *MainWindow) createDeviceRow() fyne.CanvasObject {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Device Name")

	inPortSelect := widget.NewSelect([]string{}, nil)
	inPortSelect.PlaceHolder = "Select..."

	outPortSelect := widget.NewSelect([]string{}, nil)
	outPortSelect.PlaceHolder = "Select..."

	typeSelect := widget.NewSelect(deviceTypeNames, nil)
	typeSelect.PlaceHolder = "Type"

	boundLabel := widget.NewLabel("")

	removeBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)

	return container.NewGridWithColumns(6,
		nameEntry, inPortSelect, outPortSelect, typeSelect, boundLabel,
		container.NewCenter(removeBtn),
	)
}

// boundControls counts the profile inputs that name the device
func (mw *MainWindow) boundControls(deviceName string) int {
	n := 0
	for _, in := range mw.engine.Surface().Inputs {
		if in.Device == deviceName {
			n++
		}
	}
	return n
}

func (mw *MainWindow) updateDeviceRow(id widget.ListItemID, obj fyne.CanvasObject) {
	if id >= len(mw.cfg.Devices) {
		return
	}

	device := &mw.cfg.Devices[id]
	grid := obj.(*fyne.Container)

	nameEntry := grid.Objects[0].(*widget.Entry)
	inPortSelect := grid.Objects[1].(*widget.Select)
	outPortSelect := grid.Objects[2].(*widget.Select)
	typeSelect := grid.Objects[3].(*widget.Select)
	boundLabel := grid.Objects[4].(*widget.Label)
	removeBtnContainer := grid.Objects[5].(*fyne.Container)
	removeBtn := removeBtnContainer.Objects[0].(*widget.Button)

	inPortSelect.Options = append([]string{"(None)"}, mw.midiManager.ListInPorts()...)
	outPortSelect.Options = append([]string{"(None)"}, mw.midiManager.ListOutPorts()...)

	showBound := func() {
		boundLabel.SetText(fmt.Sprintf("%d bound", mw.boundControls(device.Name)))
	}

	nameEntry.OnChanged = nil
	nameEntry.SetText(device.Name)
	nameEntry.OnChanged = func(s string) {
		device.Name = s
		showBound()
	}
	showBound()

	selectPort(inPortSelect, device.InPort, func(s string) { device.InPort = s })
	selectPort(outPortSelect, device.OutPort, func(s string) { device.OutPort = s })

	typeSelect.OnChanged = nil
	typeSelect.SetSelected(deviceTypeName(device.Type))
	typeSelect.OnChanged = func(s string) { device.Type = deviceTypeFromName(s) }

	deviceID := device.ID
	removeBtn.OnTapped = func() { mw.removeDevice(deviceID) }
}

// selectPort shows the current port and wires changes back, "(None)" meaning empty
func selectPort(sel *widget.Select, current string, set func(string)) {
	sel.OnChanged = nil
	if current == "" {
		sel.SetSelected("(None)")
	} else {
		sel.SetSelected(current)
	}
	sel.OnChanged = func(s string) {
		if s == "(None)" {
			s = ""
		}
		set(s)
	}
}

func (mw *MainWindow) addDevice() {
	mw.cfg.AddDevice(config.NewDeviceConfig())
	mw.deviceList.Refresh()
}

func (mw *MainWindow) removeDevice(id string) {
	mw.cfg.RemoveDevice(id)
	mw.deviceList.Refresh()
}

func (mw *MainWindow) saveAndActivate() {
	if err := mw.cfg.Save(); err != nil {
		slog.Error("failed to save config", "err", err)
		return
	}

	// Hand the edited table over, then re-activate devices and resend every face
	mw.engine.SetDevices(mw.cfg.Devices)
	mw.engine.InitializeDevices()

	if mw.onSave != nil {
		mw.onSave()
	}
}
