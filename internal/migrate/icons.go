package migrate

import (
	"fmt"
	"path"
)

// copyIcons copies the legacy category logos into the icons directory.
func (m *Migrator) copyIcons(rep *Report) error {
	l := m.settings.Layout
	src := path.Join(l.ImagesDir, l.LogosDir)
	ok, err := m.store.IsDir(src)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if !ok {
		rep.warnf("%s not found, no category icons copied", src)
		return nil
	}

	entries, err := m.store.ReadDir(src)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	for _, de := range entries {
		if !de.Type().IsRegular() {
			continue
		}
		if err := m.store.Copy(path.Join(src, de.Name()), path.Join(l.IconsDir, de.Name())); err != nil {
			return fmt.Errorf("migrate: copy icon: %w", err)
		}
		rep.Icons = append(rep.Icons, de.Name())
	}
	return nil
}

// rootImages lists the configured images that sit directly under the image
// root and belong to the main application.
func (m *Migrator) rootImages(rep *Report) error {
	for _, name := range m.settings.RootImages {
		ok, err := m.store.Exists(path.Join(m.settings.Layout.ImagesDir, name))
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		if ok {
			rep.RootImages = append(rep.RootImages, name)
		}
	}
	return nil
}
